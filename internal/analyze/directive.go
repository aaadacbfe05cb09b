package analyze

import (
	"go/ast"
	"go/token"

	"kafkatype/label"
)

// directive is a kafka:type comment found in a doc comment.
type directive struct {
	value string
	extra []string
	pos   token.Pos
}

// findDirective returns the first kafka:type directive in doc.
// The raw comment list is used because CommentGroup.Text drops directives.
func findDirective(doc *ast.CommentGroup) (directive, bool) {
	if doc == nil {
		return directive{}, false
	}

	for _, c := range doc.List {
		if value, extra, ok := label.ParseDirective(c.Text); ok {
			return directive{value: value, extra: extra, pos: c.Slash}, true
		}
	}

	return directive{}, false
}
