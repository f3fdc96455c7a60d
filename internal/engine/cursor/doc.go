// Package cursor provides the insertion point and the cursor tracker.
//
// The cursor package handles:
//
//   - Single insertion point positioning with the Cursor value type
//   - Line-aware movement (left, right, up, down, home, end)
//   - Translation of the insertion offset into the "Ln {line}, Col {col}"
//     status label via Tracker
//
// There is exactly one insertion point per session; multiple cursors and
// selections are not modeled.
//
// Tracker never fails: any translation error degrades to the label of the
// first position, "Ln 1, Col 0".
package cursor
