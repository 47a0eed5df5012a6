package demo

import (
	"fmt"
	"strings"

	"github.com/roach88/teasim/internal/decode"
	"github.com/roach88/teasim/internal/engine"
	"github.com/roach88/teasim/internal/nav"
	"github.com/roach88/teasim/internal/scenario"
	"github.com/roach88/teasim/internal/vdom"
)

// Item is one todo entry.
type Item struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// TodoModel is the todo list state.
type TodoModel struct {
	Owner  string `json:"owner"`
	Draft  string `json:"draft"`
	Items  []Item `json:"items"`
	Filter string `json:"filter"`
}

// TodoMsg is a todo message. Kind selects the case; Text and Index carry
// its data.
type TodoMsg struct {
	Kind  string `json:"kind"`
	Text  string `json:"text,omitempty"`
	Index int64  `json:"index,omitempty"`
}

// TodoEffect asks the host to persist the list.
type TodoEffect struct {
	Save int `json:"save,omitempty"` // number of items to write; 0 means nothing to do
}

const (
	todoDraft    = "draft"
	todoAdd      = "add"
	todoToggle   = "toggle"
	todoClear    = "clear"
	todoFilter   = "filter"
	filterAll    = "all"
	filterActive = "active"
	filterDone   = "done"
)

// Todo is a form-driven list: a labeled text field and an Add button inside
// a form, one checkbox per item, a filter select and a Clear completed
// button. Flags are {"owner": "..."}.
func Todo() scenario.Definition[string, TodoModel, TodoMsg, TodoEffect] {
	return scenario.Definition[string, TodoModel, TodoMsg, TodoEffect]{
		Program: engine.Program[string, TodoModel, TodoMsg, TodoEffect]{
			Init:   todoInit,
			Update: todoUpdate,
			View:   todoView,
		},
		Flags: decode.Field("owner", decode.String),
		Messages: decode.Map3(func(kind, text string, index int64) TodoMsg {
			return TodoMsg{Kind: kind, Text: text, Index: index}
		},
			decode.Field("kind", decode.String),
			decode.OneOf(decode.Field("text", decode.String), decode.Succeed("")),
			decode.OneOf(decode.Field("index", decode.Int), decode.Succeed[int64](0)),
		),
	}
}

func todoInit(owner string, _ *nav.Location) (TodoModel, TodoEffect) {
	if owner == "" {
		owner = "anonymous"
	}
	return TodoModel{Owner: owner, Items: []Item{}, Filter: filterAll}, TodoEffect{}
}

func todoUpdate(msg TodoMsg, model TodoModel) (TodoModel, TodoEffect) {
	items := append([]Item(nil), model.Items...)
	switch msg.Kind {
	case todoDraft:
		model.Draft = msg.Text
		return model, TodoEffect{}
	case todoAdd:
		title := strings.TrimSpace(model.Draft)
		if title == "" {
			return model, TodoEffect{}
		}
		model.Items = append(items, Item{Title: title})
		model.Draft = ""
	case todoToggle:
		if msg.Index < 0 || int(msg.Index) >= len(items) {
			return model, TodoEffect{}
		}
		items[msg.Index].Done = !items[msg.Index].Done
		model.Items = items
	case todoClear:
		kept := items[:0]
		for _, it := range items {
			if !it.Done {
				kept = append(kept, it)
			}
		}
		model.Items = kept
	case todoFilter:
		model.Filter = msg.Text
		return model, TodoEffect{}
	default:
		panic(fmt.Sprintf("todo: unknown message kind %q", msg.Kind))
	}
	return model, TodoEffect{Save: len(model.Items)}
}

func todoView(model TodoModel) *vdom.Node[TodoMsg] {
	el := vdom.Element[TodoMsg]
	a := vdom.Attrs[TodoMsg]
	text := vdom.Text[TodoMsg]

	var rows []*vdom.Node[TodoMsg]
	remaining := 0
	for i, it := range model.Items {
		if !it.Done {
			remaining++
		}
		if (model.Filter == filterActive && it.Done) || (model.Filter == filterDone && !it.Done) {
			continue
		}
		index := int64(i)
		rows = append(rows, el("li", nil,
			el("input", a(
				vdom.Type[TodoMsg]("checkbox"),
				vdom.AriaLabel[TodoMsg](it.Title),
				vdom.Checked[TodoMsg](it.Done),
				vdom.OnCheck(func(bool) TodoMsg { return TodoMsg{Kind: todoToggle, Index: index} }),
			)),
			el("span", nil, text(it.Title)),
		))
	}

	return el("main", nil,
		el("h1", nil, text(model.Owner+"'s list")),
		el("form", a(vdom.OnSubmit(TodoMsg{Kind: todoAdd})),
			el("label", a(vdom.For[TodoMsg]("new-todo")), text("New todo")),
			el("input", a(
				vdom.ID[TodoMsg]("new-todo"),
				vdom.Value[TodoMsg](model.Draft),
				vdom.OnInput(func(s string) TodoMsg { return TodoMsg{Kind: todoDraft, Text: s} }),
			)),
			el("button", nil, text("Add")),
		),
		el("label", a(vdom.For[TodoMsg]("filter")), text("Show")),
		el("select", a(vdom.ID[TodoMsg]("filter"), vdom.OnChange(func(s string) TodoMsg { return TodoMsg{Kind: todoFilter, Text: s} })),
			el("option", a(vdom.Value[TodoMsg](filterAll)), text("All")),
			el("option", a(vdom.Value[TodoMsg](filterActive)), text("Active")),
			el("option", a(vdom.Value[TodoMsg](filterDone)), text("Done")),
		),
		el("ul", a(vdom.ID[TodoMsg]("items")), rows...),
		el("p", a(vdom.ID[TodoMsg]("remaining")), text(fmt.Sprintf("%d left", remaining))),
		el("button", a(vdom.OnClick(TodoMsg{Kind: todoClear}), vdom.Disabled[TodoMsg](remaining == len(model.Items))), text("Clear completed")),
	)
}
