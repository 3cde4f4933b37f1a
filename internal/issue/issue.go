// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies one known fatal condition in the catalog.
type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	RegistryNotFoundId
	RegistryMalformedId
	EditorNotFoundId
)

// Issue is a known fatal condition with a markdown help text rendered to the
// terminal when the condition aborts startup.
type Issue struct {
	id    Id
	mdMsg string
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() string {
	return i.mdMsg
}

// Render returns the issue's help text rendered for terminal display.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.mdMsg, stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

savegate reads settings from SAVEGATE_* environment variables and an optional
config.toml in the platform config directory.

## Things you can try:
- Create a default configuration file:
~~~
$ savegate config init
~~~
- Inspect the effective configuration:
~~~
$ savegate config show
~~~
- Unset stray SAVEGATE_* variables and retry.`,
	}

	registryNotFoundIssue = &Issue{
		id: RegistryNotFoundId,
		mdMsg: `
# Command registry not found!

The server needs the generated command registry before it can dispatch
anything.

## Things you can try:
- Generate it by crawling the editor's help tree:
~~~
$ savegate crawl
~~~
- Point SAVEGATE_REGISTRY_FILE at an existing registry file.`,
	}

	registryMalformedIssue = &Issue{
		id: RegistryMalformedId,
		mdMsg: `
# Command registry is malformed!

The registry file exists but is not a JSON object mapping dotted command
keys to entries with an "argv" list.

## Things you can try:
- Regenerate it:
~~~
$ savegate crawl
~~~
- If the file is hand-edited, check every entry looks like:
~~~json
"player.max-xp": { "argv": ["player", "max-xp"] }
~~~`,
	}

	editorNotFoundIssue = &Issue{
		id: EditorNotFoundId,
		mdMsg: `
# Save editor binary not found!

savegate shells out to the external save editor for every command; it cannot
run without it.

## Things you can try:
- Point SAVEGATE_EDITOR_BINARY at the editor executable
- Point SAVEGATE_EDITOR_BIN_DIR at the directory it must run from
  (the editor resolves its data files relative to that directory)
- Check the binary is executable.`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		registryNotFoundIssue.Id():  registryNotFoundIssue,
		registryMalformedIssue.Id(): registryMalformedIssue,
		editorNotFoundIssue.Id():    editorNotFoundIssue,
	}
)

// Values returns all cataloged issues in id order.
func Values() []*Issue {
	vals := maps.Values(issues)
	slices.SortFunc(vals, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return vals
}

// Get returns the issue for id, or nil when unknown.
func Get(id Id) *Issue {
	return issues[id]
}
