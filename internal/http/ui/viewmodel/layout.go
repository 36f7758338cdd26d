package viewmodel

// User represents the authenticated user shown in the top bar.
type User struct {
	Email string
	Name  string
}

// NavItem is one sidebar entry.
type NavItem struct {
	Label  string
	Href   string
	Icon   string
	Active bool
}

// Layout captures shared chrome metadata (titles, navigation state, auth flags).
type Layout struct {
	Title            string
	PageTitle        string
	CurrentPage      string
	CSRFToken        string
	IsAuthenticated  bool
	User             *User
	Nav              []NavItem
	SidebarCollapsed bool
	ServerTime       string
	Footer           Footer
}

// Footer is the static footer block.
type Footer struct {
	Product  string
	Location string
}
