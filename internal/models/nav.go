package models

// NavResource is one external link in the navigation portal.
type NavResource struct {
	ID          string
	Name        string
	Description string
	URL         string
	Icon        string // icon key, rendered by the consuming surface
	BgColor     string // presentation hint carried through unchanged
}

// NavGroup groups related navigation resources under a title.
type NavGroup struct {
	ID    string
	Title string
	Items []NavResource
}
