package models

// Result is a single web search hit. Date is the provider-reported publish
// date when available, empty otherwise.
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
	Date    string `json:"date,omitempty"`
}
