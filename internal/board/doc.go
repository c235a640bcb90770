// Package board holds the in-memory kanban state: three fixed columns of
// task cards and the drag context used to move a card between them.
//
// A Board is owned by a single event loop. Operations never fail; invalid
// input (an empty title, an unknown column, a drop with no drag in flight)
// leaves the board untouched and reports false.
//
// # Columns
//
//   - "todo": work not yet started
//   - "in_progress": work underway
//   - "done": finished work
//
// The column set and order are fixed for the life of a Board. Only the task
// sequences change, and they change append-only: new and moved tasks go to
// the end of their column.
//
// # Drag and drop
//
// BeginDrag records which task is in flight and where it came from.
// DropOnColumn moves it to the end of the target column and clears the
// context. CancelDrag clears the context without touching the columns.
//
// # Seed files
//
// A board can start from a JSON seed instead of the built-in one:
//
//	{
//	  "schema_version": 1,
//	  "title": "Sprint 12",
//	  "columns": [
//	    {"id": "todo", "title": "To do", "tasks": [{"id": "1", "title": "Login"}]},
//	    {"id": "in_progress", "title": "Doing", "tasks": []},
//	    {"id": "done", "title": "Done", "tasks": []}
//	  ]
//	}
//
// Seed files are validated against an embedded JSON Schema, then checked for
// column order and board-wide id uniqueness. They are only ever read.
package board
