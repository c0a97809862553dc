// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

const (
	DeclarationNotFoundId Id = iota + 1
	DeclarationParseErrorId
	DeclarationInvalidId
	ConformanceFailedId
	GenerateOutputFailedId
	ConfigLoadFailedId
)

type (
	// Id identifies an issue in the catalog.
	Id int

	// MarkdownMsg is the Markdown body of an issue.
	MarkdownMsg string

	// HttpLink is a documentation or external URL.
	HttpLink string

	// Issue is a documented, recurring problem with remediation steps.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
		extLinks []HttpLink
	}
)

var (
	render = glamour.Render

	declarationNotFoundIssue = &Issue{
		id: DeclarationNotFoundId,
		mdMsg: `
# No trait declaration file found!

traitkit reads trait declarations from a CUE or TOML file, by default
` + "`traits.cue`" + ` in the current directory.

## Things you can try:
- Create a starter file:
~~~
$ traitkit init
~~~
- Pass the file explicitly:
~~~
$ traitkit generate path/to/traits.cue
~~~`,
		docLinks: []HttpLink{"https://github.com/invowk/traitkit#declaration-files"},
	}

	declarationParseErrorIssue = &Issue{
		id: DeclarationParseErrorId,
		mdMsg: `
# The declaration file does not match the schema!

Every declaration file is checked against the embedded schema. The error
names the offending path, e.g. ` + "`traits[0].members[1].kind`" + `.

## Things you can try:
- Member kinds are ` + "`\"state\"`" + ` or ` + "`\"behavior\"`" + `
- State members need a ` + "`type`" + `; behavior members may omit it
- Only behavior members take ` + "`params`" + `
- Print the schema:
~~~
$ traitkit describe --schema
~~~`,
		docLinks: []HttpLink{"https://github.com/invowk/traitkit#schema"},
		extLinks: []HttpLink{"https://cuelang.org/docs/tour/"},
	}

	declarationInvalidIssue = &Issue{
		id: DeclarationInvalidId,
		mdMsg: `
# The declarations are inconsistent!

The file parsed, but some traits or implementation blocks contradict each other.

## Common causes:
- Two members of one trait share a name, or map to the same Go name
  (` + "`get_value`" + ` and ` + "`GetValue`" + `)
- An implementation block names a trait that is not declared
- Two traits of one implementation block have members with the same Go name
- The same trait is declared differently in two files`,
		docLinks: []HttpLink{"https://github.com/invowk/traitkit#validation"},
	}

	conformanceFailedIssue = &Issue{
		id: ConformanceFailedId,
		mdMsg: `
# A type does not implement its traits!

The generated code asserts ` + "`func(self *T) Trait { return self }`" + ` for every
implementation block, so a missing behavior is a compile error.

## Things you can try:
- Add the missing pointer-receiver method to the type
- Check that parameter and result types match the declaration exactly
- Run the analyzer for a precise report:
~~~
$ go vet -vettool=$(which traitcheck) ./...
~~~`,
		docLinks: []HttpLink{"https://github.com/invowk/traitkit#conformance"},
	}

	generateOutputFailedIssue = &Issue{
		id: GenerateOutputFailedId,
		mdMsg: `
# The generated code could not be written!

## Things you can try:
- Check that the output directory exists and is writable
- Use ` + "`--stdout`" + ` to inspect the generated code
- Set ` + "`generate.output`" + ` in your config to another file name`,
		docLinks: []HttpLink{"https://github.com/invowk/traitkit#generate"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load the configuration!

## Things you can try:
- Show where traitkit looks for its config:
~~~
$ traitkit config path
~~~
- Compare your file with the defaults:
~~~
$ traitkit config show
~~~
- Recreate the default file:
~~~
$ traitkit config init
~~~`,
		docLinks: []HttpLink{"https://github.com/invowk/traitkit#configuration"},
	}

	issues = map[Id]*Issue{
		declarationNotFoundIssue.Id():   declarationNotFoundIssue,
		declarationParseErrorIssue.Id(): declarationParseErrorIssue,
		declarationInvalidIssue.Id():    declarationInvalidIssue,
		conformanceFailedIssue.Id():     conformanceFailedIssue,
		generateOutputFailedIssue.Id():  generateOutputFailedIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
	}
)

func (i *Issue) Id() Id { return i.id }

func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

func (i *Issue) DocLinks() []HttpLink { return slices.Clone(i.docLinks) }

func (i *Issue) ExtLinks() []HttpLink { return slices.Clone(i.extLinks) }

// Markdown returns the message followed by a "See also" section listing
// the links.
func (i *Issue) Markdown() string {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		sb.WriteString("\n\n## See also:\n")
		for _, links := range [][]HttpLink{i.docLinks, i.extLinks} {
			for _, link := range links {
				sb.WriteString("- <" + string(link) + ">\n")
			}
		}
	}
	return sb.String()
}

// Render renders the issue for the terminal with the glamour style at
// stylePath ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Markdown(), stylePath)
}

// Values returns every issue, ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

// Get returns the issue with the given id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
