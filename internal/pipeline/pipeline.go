package pipeline

import (
	"context"
	"fmt"
)

// BodyRenderer runs a post body through every stage: preprocessing,
// goldmark conversion and sibling link rewriting.
type BodyRenderer struct {
	preprocessor MarkdownPreprocessor
	converter    HTMLConverter
}

// NewBodyRenderer wires the default preprocessor to converter.
func NewBodyRenderer(converter HTMLConverter) *BodyRenderer {
	return &BodyRenderer{
		preprocessor: &CommonMarkPreprocessor{},
		converter:    converter,
	}
}

// Render converts a Markdown body to an HTML fragment.
// resolve may be nil to leave links untouched.
func (r *BodyRenderer) Render(ctx context.Context, body string, resolve LinkResolver) (string, error) {
	md := r.preprocessor.PreprocessMarkdown(ctx, body)

	fragment, err := r.converter.ToHTML(ctx, md)
	if err != nil {
		return "", err
	}

	fragment, err = RewritePostLinks(fragment, resolve)
	if err != nil {
		return "", fmt.Errorf("rewriting links: %w", err)
	}
	return fragment, nil
}
