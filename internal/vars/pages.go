package vars

// Page is a named group of variables presented together.
type Page struct {
	Name string
	Vars []*Var
}

// GroupByPage groups list by Page, keeping the order in which pages first
// appear and the declaration order inside each page.
func GroupByPage(list []Var) []Page {
	var pages []Page
	index := make(map[string]int)
	for i := range list {
		v := &list[i]
		n, ok := index[v.Page]
		if !ok {
			n = len(pages)
			index[v.Page] = n
			pages = append(pages, Page{Name: v.Page})
		}
		pages[n].Vars = append(pages[n].Vars, v)
	}
	return pages
}

// Find returns the variable called name, or nil.
func Find(list []Var, name string) *Var {
	for i := range list {
		if list[i].Name == name {
			return &list[i]
		}
	}
	return nil
}

// Names returns the variable names in declaration order.
func Names(list []Var) []string {
	names := make([]string, len(list))
	for i := range list {
		names[i] = list[i].Name
	}
	return names
}
