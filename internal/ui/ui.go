package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/chorus/internal/api"
	"github.com/desertthunder/chorus/internal/models"
	"github.com/desertthunder/chorus/internal/routes"
	"github.com/desertthunder/chorus/internal/session"
	"github.com/desertthunder/chorus/internal/views"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	CatalogView ViewState = iota
	DetailView
	CollectionView
	UsersView
	AdminView
	ConfirmView
)

// confirmKind distinguishes what a pending confirmation would destroy.
type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmRemoveEntry
	confirmDeleteMusic
)

// Model represents the TUI application state.
//
// Each view delegates its data to the matching controller, so loading flags,
// optimistic patches, and error states behave the same as in the CLI.
type Model struct {
	ctx        context.Context
	view       ViewState
	route      routes.Route
	session    *session.Controller
	catalog    *views.CatalogController
	collection *views.CollectionController
	users      *views.UsersController
	admin      *views.AdminController
	detail     *views.DetailController
	client     *api.Client

	width  int
	height int

	catalogList    list.Model
	collectionList list.Model
	userList       list.Model
	adminList      list.Model

	confirm     confirmKind
	confirmID   int64
	confirmName string
	returnTo    ViewState

	notice string
	err    error
	help   help.Model
	keys   keyMap
}

// ModelOpts carries the dependencies for [NewModel].
type ModelOpts struct {
	Session    *session.Controller
	Catalog    *views.CatalogController
	Collection *views.CollectionController
	Users      *views.UsersController
	Admin      *views.AdminController
	Client     *api.Client
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts ModelOpts) *Model {
	return &Model{
		ctx:        ctx,
		view:       CatalogView,
		route:      routes.Route{Name: routes.Catalog},
		session:    opts.Session,
		catalog:    opts.Catalog,
		collection: opts.Collection,
		users:      opts.Users,
		admin:      opts.Admin,
		client:     opts.Client,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init initializes the TUI by loading the catalog.
func (m *Model) Init() tea.Cmd {
	return m.loadCatalog()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, l := range []*list.Model{&m.catalogList, &m.collectionList, &m.userList, &m.adminList} {
			if l.Width() == 0 {
				l.SetSize(msg.Width-4, msg.Height-8)
			}
		}
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleNavigation(msg); handled {
			return m, cmd
		}
		switch m.view {
		case CatalogView:
			return m.handleCatalogKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case CollectionView:
			return m.handleCollectionKeys(msg)
		case UsersView:
			return m.handleUserKeys(msg)
		case AdminView:
			return m.handleAdminKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		}

	case catalogLoadedMsg:
		m.err = msg.err
		m.catalogList = m.newMusicList("Catalog", m.catalog.Items())
		if m.catalog.Offline() {
			m.notice = "offline: showing cached catalog"
		} else {
			m.notice = ""
		}
		return m, nil

	case detailLoadedMsg:
		m.err = msg.err
		return m, nil

	case collectionLoadedMsg:
		m.err = msg.err
		m.collectionList = m.newCollectionList(m.collection.Entries())
		return m, nil

	case usersLoadedMsg:
		m.err = msg.err
		m.userList = m.newUserList(m.users.Users())
		return m, nil

	case adminLoadedMsg:
		m.err = msg.err
		m.adminList = m.newMusicList("Catalog Management", m.admin.Items())
		return m, nil

	case actionDoneMsg:
		m.err = msg.err
		switch msg.refresh {
		case CollectionView:
			m.collectionList = m.newCollectionList(m.collection.Entries())
		case AdminView:
			m.adminList = m.newMusicList("Catalog Management", m.admin.Items())
		}
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case CatalogView:
		return m.renderCatalog()
	case DetailView:
		return m.renderDetail()
	case CollectionView:
		return m.renderCollection()
	case UsersView:
		return m.renderUsers()
	case AdminView:
		return m.renderAdmin()
	case ConfirmView:
		return m.renderConfirm()
	default:
		return ""
	}
}

// handleNavigation resolves the number keys into routes, the same resolution
// the CLI applies to location arguments.
func (m *Model) handleNavigation(msg tea.KeyMsg) (tea.Cmd, bool) {
	if m.view == ConfirmView {
		return nil, false
	}

	var fragment string
	switch {
	case key.Matches(msg, m.keys.catalog):
		fragment = "#/music"
	case key.Matches(msg, m.keys.library):
		fragment = "#/collection"
	case key.Matches(msg, m.keys.users):
		fragment = "#/users"
	case key.Matches(msg, m.keys.admin):
		fragment = "#/admin"
	default:
		return nil, false
	}

	return m.navigate(routes.Resolve(fragment)), true
}

// navigate switches to the view a route names and triggers its load.
func (m *Model) navigate(r routes.Route) tea.Cmd {
	m.route = r
	m.err = nil

	switch r.Name {
	case routes.Catalog:
		m.view = CatalogView
		return m.loadCatalog()
	case routes.CatalogDetail:
		m.view = DetailView
		m.detail = views.NewDetailController(m.client, r.MusicID)
		return m.loadDetail()
	case routes.Collection:
		m.view = CollectionView
		return m.loadCollection()
	case routes.Users:
		m.view = UsersView
		return m.loadUsers()
	case routes.Admin:
		m.view = AdminView
		return m.loadAdmin()
	}

	m.view = CatalogView
	return m.loadCatalog()
}

func (m *Model) handleCatalogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.refresh):
		return m, m.loadCatalog()
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.catalogList.SelectedItem().(musicItem); ok {
			return m, m.navigate(routes.Route{Name: routes.CatalogDetail, MusicID: item.music.ID})
		}
	case key.Matches(msg, m.keys.add):
		if item, ok := m.catalogList.SelectedItem().(musicItem); ok {
			return m, m.addToCollection(item.music.ID)
		}
	}

	var cmd tea.Cmd
	m.catalogList, cmd = m.catalogList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		return m, m.navigate(routes.Route{Name: routes.Catalog})
	case key.Matches(msg, m.keys.add):
		detail := m.detail
		return m, func() tea.Msg {
			_, err := detail.AddToCollection(m.ctx)
			return actionDoneMsg{err: err}
		}
	}
	return m, nil
}

func (m *Model) handleCollectionKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	status := models.CollectionStatus("")
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.refresh):
		return m, m.loadCollection()
	case key.Matches(msg, m.keys.like):
		status = models.StatusLike
	case key.Matches(msg, m.keys.dislike):
		status = models.StatusDislike
	case key.Matches(msg, m.keys.favourite):
		status = models.StatusFavourite
	case key.Matches(msg, m.keys.remove):
		if item, ok := m.collectionList.SelectedItem().(collectionItem); ok {
			m.beginConfirm(confirmRemoveEntry, item.entry.ID, item.entry.Music.Title, CollectionView)
		}
		return m, nil
	}

	if status != "" {
		if item, ok := m.collectionList.SelectedItem().(collectionItem); ok {
			return m, m.changeStatus(item.entry.ID, status)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.collectionList, cmd = m.collectionList.Update(msg)
	return m, cmd
}

func (m *Model) handleUserKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.refresh):
		return m, m.loadUsers()
	}

	var cmd tea.Cmd
	m.userList, cmd = m.userList.Update(msg)
	return m, cmd
}

func (m *Model) handleAdminKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.refresh):
		return m, m.loadAdmin()
	case key.Matches(msg, m.keys.remove):
		if item, ok := m.adminList.SelectedItem().(musicItem); ok {
			m.beginConfirm(confirmDeleteMusic, item.music.ID, item.music.Title, AdminView)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.adminList, cmd = m.adminList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.quit):
		m.view = m.returnTo
		m.confirm = confirmNone
		return m, nil
	case key.Matches(msg, m.keys.yes):
		kind, id := m.confirm, m.confirmID
		m.view = m.returnTo
		m.confirm = confirmNone
		switch kind {
		case confirmRemoveEntry:
			return m, m.removeEntry(id)
		case confirmDeleteMusic:
			return m, m.deleteMusic(id)
		}
	}
	return m, nil
}

func (m *Model) beginConfirm(kind confirmKind, id int64, name string, returnTo ViewState) {
	m.confirm = kind
	m.confirmID = id
	m.confirmName = name
	m.returnTo = returnTo
	m.view = ConfirmView
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case CatalogView:
		m.catalogList, cmd = m.catalogList.Update(msg)
	case CollectionView:
		m.collectionList, cmd = m.collectionList.Update(msg)
	case UsersView:
		m.userList, cmd = m.userList.Update(msg)
	case AdminView:
		m.adminList, cmd = m.adminList.Update(msg)
	}
	return m, cmd
}

func (m *Model) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		return catalogLoadedMsg{err: m.catalog.Load(m.ctx)}
	}
}

func (m *Model) loadDetail() tea.Cmd {
	detail := m.detail
	return func() tea.Msg {
		return detailLoadedMsg{err: detail.Load(m.ctx)}
	}
}

func (m *Model) loadCollection() tea.Cmd {
	return func() tea.Msg {
		return collectionLoadedMsg{err: m.collection.Load(m.ctx)}
	}
}

func (m *Model) loadUsers() tea.Cmd {
	return func() tea.Msg {
		return usersLoadedMsg{err: m.users.Load(m.ctx)}
	}
}

func (m *Model) loadAdmin() tea.Cmd {
	return func() tea.Msg {
		return adminLoadedMsg{err: m.admin.Load(m.ctx)}
	}
}

func (m *Model) addToCollection(musicID int64) tea.Cmd {
	return func() tea.Msg {
		_, err := m.catalog.AddToCollection(m.ctx, musicID)
		return actionDoneMsg{err: err}
	}
}

func (m *Model) changeStatus(entryID int64, status models.CollectionStatus) tea.Cmd {
	return func() tea.Msg {
		err := m.collection.ChangeStatus(m.ctx, entryID, status)
		return actionDoneMsg{refresh: CollectionView, err: err}
	}
}

func (m *Model) removeEntry(entryID int64) tea.Cmd {
	return func() tea.Msg {
		err := m.collection.RemoveEntry(m.ctx, entryID)
		return actionDoneMsg{refresh: CollectionView, err: err}
	}
}

func (m *Model) deleteMusic(id int64) tea.Cmd {
	return func() tea.Msg {
		err := m.admin.Delete(m.ctx, id)
		return actionDoneMsg{refresh: AdminView, err: err}
	}
}

func (m *Model) newMusicList(title string, entries []models.Music) list.Model {
	items := make([]list.Item, len(entries))
	for i, music := range entries {
		items[i] = musicItem{music: music}
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetSize(m.width-4, m.height-8)
	return l
}

func (m *Model) newCollectionList(entries []models.CollectionEntry) list.Model {
	items := make([]list.Item, len(entries))
	for i, entry := range entries {
		items[i] = collectionItem{entry: entry}
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "My Collection"
	l.SetSize(m.width-4, m.height-8)
	return l
}

func (m *Model) newUserList(users []models.User) list.Model {
	items := make([]list.Item, len(users))
	for i, user := range users {
		items[i] = userItem{user: user}
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Users"
	l.SetSize(m.width-4, m.height-8)
	return l
}

func (m *Model) statusLine() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.notice != "" {
		return styles.warn.Render(m.notice)
	}
	return ""
}

func (m *Model) renderCatalog() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.add, m.keys.refresh, m.keys.quit}
	return fmt.Sprintf("%s\n%s\n\n%s", m.catalogList.View(), m.statusLine(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderDetail() string {
	helpKeys := []key.Binding{m.keys.add, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	if m.detail == nil || m.detail.Music() == nil {
		if m.err != nil {
			return fmt.Sprintf("%s\n\n%s", m.statusLine(), helpView)
		}
		return fmt.Sprintf("Loading...\n\n%s", helpView)
	}

	music := m.detail.Music()
	title := styles.title.Render(fmt.Sprintf("%s - %s", music.Artist, music.Title))

	info := ""
	if music.Album != nil && *music.Album != "" {
		info += fmt.Sprintf("Album: %s\n", *music.Album)
	}
	if music.Year != nil {
		info += fmt.Sprintf("Year: %d\n", *music.Year)
	}

	comments := m.detail.Comments()
	body := fmt.Sprintf("\nComments (%d):\n", len(comments))
	for _, c := range comments {
		rating := ""
		if c.Rating != nil {
			rating = fmt.Sprintf(" [%d/5]", *c.Rating)
		}
		body += fmt.Sprintf("  • user %d%s: %s\n", c.UserID, rating, c.Content)
	}

	return fmt.Sprintf("%s\n%s%s\n%s\n%s", title, info, body, m.statusLine(), helpView)
}

func (m *Model) renderCollection() string {
	helpKeys := []key.Binding{m.keys.like, m.keys.dislike, m.keys.favourite, m.keys.remove, m.keys.quit}
	return fmt.Sprintf("%s\n%s\n\n%s", m.collectionList.View(), m.statusLine(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderUsers() string {
	helpKeys := []key.Binding{m.keys.refresh, m.keys.quit}
	return fmt.Sprintf("%s\n%s\n\n%s", m.userList.View(), m.statusLine(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderAdmin() string {
	if m.admin.AccessDenied() {
		msg := styles.err.Render("Access denied: catalog management requires the admin role")
		helpKeys := []key.Binding{m.keys.catalog, m.keys.quit}
		return fmt.Sprintf("%s\n\n%s", msg, m.help.ShortHelpView(helpKeys))
	}

	helpKeys := []key.Binding{m.keys.remove, m.keys.refresh, m.keys.quit}
	return fmt.Sprintf("%s\n%s\n\n%s", m.adminList.View(), m.statusLine(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderConfirm() string {
	var prompt string
	switch m.confirm {
	case confirmRemoveEntry:
		prompt = fmt.Sprintf("Remove '%s' from your collection?", m.confirmName)
	case confirmDeleteMusic:
		prompt = fmt.Sprintf("Delete '%s' from the catalog?", m.confirmName)
	}

	title := styles.title.Render(prompt)
	helpKeys := []key.Binding{m.keys.yes, m.keys.no}
	return fmt.Sprintf("%s\n\n%s", title, m.help.ShortHelpView(helpKeys))
}
