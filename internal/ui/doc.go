// Package ui contains the Bubble Tea program that renders the multi-select
// list. The Model type focuses on message orchestration, while dedicated
// helpers own navigation, input, rendering, and scrolling.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Each tea.Msg is
//     routed through a typed handler registry so it is handled by a focused
//     function (navigation for key presses, scroll.go for the mouse, and so on).
//   - After every handler the model reconciles a controlled search source and
//     asks the list whether a filter pass is pending. Large stores filter off
//     the update loop: filterCmd captures a ticket and the matching result comes
//     back as a filterResultMsg, which is dropped when a newer query superseded it.
//
// State ownership:
//   - Items, filtering, selection and the virtualized viewport live in
//     internal/ui/state.List. The model only keeps presentation state such as
//     focus, the selected panel viewport, and status messages.
//   - Side effects such as copying the selection to the clipboard go through
//     the internal/ui/command bus and report back as command.ResultMsg.
//
// Rendering:
//   - A Renderer draws items, the search line, the select-all row and the
//     selection status. DefaultRenderer provides the stock look and can be
//     embedded to override single hooks.
//   - Only the window of rows overlapping the viewport (plus overscan) is
//     rendered, so View cost does not grow with the item count.
package ui
