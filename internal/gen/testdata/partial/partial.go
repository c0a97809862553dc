// SPDX-License-Identifier: MPL-2.0

package partial

// TestStruct implements get_value but not test_method.
type TestStruct struct {
	ID int
}

func (s *TestStruct) GetValue(input int) int { return input * 2 }
