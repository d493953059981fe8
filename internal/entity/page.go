package entity

type PageName string

const (
	PageContext        PageName = "Contexte et Exploration"
	PageModelSelection PageName = "Modele selectione"
	PageDetectionDemo  PageName = "Detection demo"
)

var pageSlugs = map[PageName]string{
	PageContext:        "contexte",
	PageModelSelection: "modele",
	PageDetectionDemo:  "demo",
}

// Slug returns the URL form of the page name, or "" for names outside the menu.
func (p PageName) Slug() string {
	return pageSlugs[p]
}

func (p PageName) String() string {
	return string(p)
}

func PageFromSlug(slug string) (PageName, bool) {
	for name, s := range pageSlugs {
		if s == slug {
			return name, true
		}
	}
	return "", false
}

// DefaultMenu is the sidebar order, first entry selected on a fresh session.
func DefaultMenu() []PageName {
	return []PageName{PageContext, PageModelSelection, PageDetectionDemo}
}
