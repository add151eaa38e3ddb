package schema

// BoardCommentTable represents the 'board.comment' table
type BoardCommentTable struct {
	Table   string
	ID      string
	Comment string
}

// BoardComment is the schema definition for board.comment
var BoardComment = BoardCommentTable{
	Table:   "board.comment",
	ID:      "id",
	Comment: "comment",
}

// Columns returns all standard column names in scan order
func (t BoardCommentTable) Columns() []string {
	return []string{t.ID, t.Comment}
}
