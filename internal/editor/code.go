package editor

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// CodeIssue is a syntax problem found in script code. Line and Column are
// 1-based.
type CodeIssue struct {
	Line    int
	Column  int
	Message string
}

func (i CodeIssue) String() string {
	return fmt.Sprintf("%d:%d: %s", i.Line, i.Column, i.Message)
}

// CheckJavaScript parses code with the tree-sitter JavaScript grammar and
// returns every ERROR or MISSING node. The grammar accepts module syntax, so
// esm scripts are checked the same way.
func CheckJavaScript(ctx context.Context, code string) ([]CodeIssue, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, []byte(code))
	if err != nil {
		return nil, fmt.Errorf("parse javascript: %w", err)
	}

	root := tree.RootNode()
	if root == nil || !root.HasError() {
		return nil, nil
	}
	var issues []CodeIssue
	collectIssues(root, &issues)
	if len(issues) == 0 {
		issues = append(issues, CodeIssue{Line: 1, Column: 1, Message: "syntax error"})
	}
	return issues, nil
}

func collectIssues(node *sitter.Node, issues *[]CodeIssue) {
	if node.IsError() || node.IsMissing() {
		message := "syntax error"
		if node.IsMissing() {
			message = fmt.Sprintf("missing %s", node.Type())
		}
		start := node.StartPoint()
		*issues = append(*issues, CodeIssue{
			Line:    int(start.Row) + 1,
			Column:  int(start.Column) + 1,
			Message: message,
		})
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.HasError() || child.IsError() || child.IsMissing() {
			collectIssues(child, issues)
		}
	}
}

// CheckCode runs CheckJavaScript on the form's code. Issues are advisory and
// never block Export.
func (s *Session) CheckCode(ctx context.Context) ([]CodeIssue, error) {
	return CheckJavaScript(ctx, s.form.Code)
}
