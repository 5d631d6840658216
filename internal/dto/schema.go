package dto

// RenderResponse carries rendered markup for a single output format.
type RenderResponse struct {
	Format  string `json:"format"`
	Content string `json:"content"`
}
