// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/danielhkuo/tickoff/client"
	"github.com/danielhkuo/tickoff/models"
)

// requestTimeout bounds every API call made from the UI
const requestTimeout = 10 * time.Second

// API is the part of *client.Client the UI uses
type API interface {
	Session() (*client.Session, error)
	Register(ctx context.Context, username, email, password string) (*client.Session, error)
	Login(ctx context.Context, username, password string) (*client.Session, error)
	Logout() error

	ListTodos(ctx context.Context) ([]models.TodoResponse, error)
	CreateTodo(ctx context.Context, req models.CreateTodoRequest) (*models.TodoResponse, error)
	UpdateTodo(ctx context.Context, id int64, patch models.UpdateTodoRequest) (*models.TodoResponse, error)
	ToggleTodo(ctx context.Context, id int64) (*models.TodoResponse, error)
	DeleteTodo(ctx context.Context, id int64) error
}

type screen int

const (
	screenLogin screen = iota
	screenList
)

type editMode int

const (
	editNone editMode = iota
	editAdd
	editExisting
)

// Auth form inputs
const (
	fieldUsername = iota
	fieldEmail
	fieldPassword
)

// Edit form inputs
const (
	fieldTitle = iota
	fieldDescription
)

// Messages delivered by API commands

type authDoneMsg struct {
	session *client.Session
	err     error
}

// The todo messages carry the generation of the list they were sent
// from; replies for an earlier login are dropped.

type todosLoadedMsg struct {
	gen   int
	todos []models.TodoResponse
	err   error
}

type todoSavedMsg struct {
	gen  int
	todo *models.TodoResponse
	err  error
}

type todoDeletedMsg struct {
	gen int
	id  int64
	err error
}

type todosClearedMsg struct {
	gen int
	ids []int64
	err error
}

// Model is the bubbletea model for the terminal client. It has two
// screens: the login/register form, and the todo list with its inline
// add/edit form.
type Model struct {
	api   API
	keys  KeyMap
	theme Theme

	screen screen
	width  int
	height int

	// Login screen
	registering bool
	authInputs  []textinput.Model
	authFocus   int    // index into authFields()
	authErr     string // last failed login/register
	notice      string // e.g. "session expired"
	busy        bool

	// List screen
	generation int // bumped whenever the list is left
	user       client.User
	board      Board
	cursor     int
	mode       editMode
	editID     int64
	editInputs []textinput.Model
	editFocus  int
}

// NewModel starts on the list when a session is stored, otherwise on the
// login form.
func NewModel(api API) Model {
	model := Model{
		api:        api,
		keys:       DefaultKeyMap,
		theme:      DefaultTheme,
		authInputs: newAuthInputs(),
		editInputs: newEditInputs(),
	}

	session, err := api.Session()
	switch {
	case err != nil:
		model.authErr = "Could not read saved session: " + err.Error()
		model.focusAuth(0)
	case session != nil:
		model.screen = screenList
		model.user = session.User
		model.board.Loading = true
	default:
		model.focusAuth(0)
	}
	return model
}

func newAuthInputs() []textinput.Model {
	inputs := make([]textinput.Model, 3)

	inputs[fieldUsername] = textinput.New()
	inputs[fieldUsername].Placeholder = "username"
	inputs[fieldUsername].CharLimit = models.MaxUsernameLen

	inputs[fieldEmail] = textinput.New()
	inputs[fieldEmail].Placeholder = "you@example.com"
	inputs[fieldEmail].CharLimit = models.MaxEmailLen

	inputs[fieldPassword] = textinput.New()
	inputs[fieldPassword].Placeholder = "password"
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].EchoCharacter = '•'
	inputs[fieldPassword].CharLimit = models.MaxPasswordBytes

	return inputs
}

func newEditInputs() []textinput.Model {
	inputs := make([]textinput.Model, 2)

	inputs[fieldTitle] = textinput.New()
	inputs[fieldTitle].Placeholder = "What needs doing?"
	inputs[fieldTitle].CharLimit = models.MaxTitleLen

	inputs[fieldDescription] = textinput.New()
	inputs[fieldDescription].Placeholder = "details (optional)"
	inputs[fieldDescription].CharLimit = models.MaxDescriptionLen

	return inputs
}

// Init implements tea.Model. Loads the list if already logged in.
func (model Model) Init() tea.Cmd {
	if model.screen == screenList {
		return model.loadTodos()
	}
	return textinput.Blink
}

// Update implements tea.Model
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		return model, nil

	case tea.KeyMsg:
		if message.Type == tea.KeyCtrlC {
			return model, tea.Quit
		}
		switch {
		case model.screen == screenLogin:
			return model.handleAuthKeys(message)
		case model.mode != editNone:
			return model.handleEditKeys(message)
		default:
			return model.handleListKeys(message)
		}

	case authDoneMsg:
		model.busy = false
		if message.err != nil {
			model.authErr = describe(message.err)
			return model, nil
		}
		model.enterList(message.session.User)
		return model, model.loadTodos()

	case todosLoadedMsg:
		if message.gen != model.generation {
			return model, nil
		}
		model.board.Loading = false
		if message.err != nil {
			model.fail(message.err, "Could not load todos")
			if model.screen == screenList {
				model.board.Err += " (press r to retry)"
			}
			return model, nil
		}
		model.board.Replace(message.todos)
		model.board.Err = ""
		model.clampCursor()

	case todoSavedMsg:
		if message.gen != model.generation {
			return model, nil
		}
		if message.err != nil {
			model.fail(message.err, "Could not save todo")
			return model, nil
		}
		model.board.Upsert(*message.todo)
		model.clampCursor()

	case todoDeletedMsg:
		if message.gen != model.generation {
			return model, nil
		}
		if message.err != nil {
			model.fail(message.err, "Could not delete todo")
			return model, nil
		}
		model.board.Remove(message.id)
		model.clampCursor()

	case todosClearedMsg:
		if message.gen != model.generation {
			return model, nil
		}
		model.board.Remove(message.ids...)
		model.clampCursor()
		if message.err != nil {
			model.fail(message.err, "Some todos were not cleared")
		}
	}

	// Anything else (cursor blink) goes to the focused input
	return model.updateFocusedInput(message)
}

func (model Model) updateFocusedInput(message tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case model.screen == screenLogin:
		field := model.authFields()[model.authFocus]
		model.authInputs[field], cmd = model.authInputs[field].Update(message)
	case model.mode != editNone:
		model.editInputs[model.editFocus], cmd = model.editInputs[model.editFocus].Update(message)
	}
	return model, cmd
}

// Login screen

// authFields lists the inputs shown for the current form
func (model Model) authFields() []int {
	if model.registering {
		return []int{fieldUsername, fieldEmail, fieldPassword}
	}
	return []int{fieldUsername, fieldPassword}
}

func (model *Model) focusAuth(position int) tea.Cmd {
	fields := model.authFields()
	position = (position + len(fields)) % len(fields)
	model.authFocus = position

	var cmd tea.Cmd
	for i := range model.authInputs {
		if i == fields[position] {
			cmd = model.authInputs[i].Focus()
		} else {
			model.authInputs[i].Blur()
		}
	}
	return cmd
}

func (model Model) handleAuthKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.busy {
		return model, nil
	}

	switch {
	case key.Matches(message, model.keys.NextField):
		return model, model.focusAuth(model.authFocus + 1)

	case key.Matches(message, model.keys.PrevField):
		return model, model.focusAuth(model.authFocus - 1)

	case key.Matches(message, model.keys.SwitchMode):
		model.registering = !model.registering
		model.authErr = ""
		return model, model.focusAuth(0)

	case key.Matches(message, model.keys.Cancel):
		model.authErr = ""
		return model, nil

	case key.Matches(message, model.keys.Submit):
		return model.submitAuth()
	}

	return model.updateFocusedInput(message)
}

func (model Model) submitAuth() (tea.Model, tea.Cmd) {
	username := strings.TrimSpace(model.authInputs[fieldUsername].Value())
	email := strings.TrimSpace(model.authInputs[fieldEmail].Value())
	password := model.authInputs[fieldPassword].Value()

	if username == "" || password == "" || (model.registering && email == "") {
		model.authErr = "Please fill in every field"
		return model, nil
	}

	model.busy = true
	model.authErr = ""
	api := model.api
	registering := model.registering
	return model, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var session *client.Session
		var err error
		if registering {
			session, err = api.Register(ctx, username, email, password)
		} else {
			session, err = api.Login(ctx, username, password)
		}
		return authDoneMsg{session: session, err: err}
	}
}

func (model *Model) enterList(user client.User) {
	model.screen = screenList
	model.user = user
	model.notice = ""
	model.authErr = ""
	model.authInputs[fieldPassword].SetValue("")
	model.board = Board{Loading: true}
	model.cursor = 0
	model.mode = editNone
}

// leaveList returns to the login form with notice shown above it
func (model *Model) leaveList(notice string) {
	model.generation++
	model.screen = screenLogin
	model.notice = notice
	model.board = Board{}
	model.mode = editNone
	model.cursor = 0
	model.registering = false
	model.focusAuth(0)
}

// List screen

func (model Model) handleListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}

	case key.Matches(message, model.keys.Down):
		if model.cursor < len(model.board.Visible())-1 {
			model.cursor++
		}

	case key.Matches(message, model.keys.Add):
		return model, model.startEdit(nil)

	case key.Matches(message, model.keys.Edit):
		if selected, ok := model.selected(); ok {
			return model, model.startEdit(&selected)
		}

	case key.Matches(message, model.keys.Toggle):
		if selected, ok := model.selected(); ok {
			model.board.Err = ""
			return model, model.toggleTodo(selected.ID)
		}

	case key.Matches(message, model.keys.Delete):
		if selected, ok := model.selected(); ok {
			model.board.Err = ""
			return model, model.deleteTodo(selected.ID)
		}

	case key.Matches(message, model.keys.ClearCompleted):
		if model.board.CompletedCount() > 0 {
			model.board.Err = ""
			return model, model.clearCompleted()
		}

	case key.Matches(message, model.keys.Filter):
		model.board.Filter = model.board.Filter.Next()
		model.cursor = 0

	case key.Matches(message, model.keys.Retry):
		model.board.Loading = true
		model.board.Err = ""
		return model, model.loadTodos()

	case key.Matches(message, model.keys.Logout):
		notice := "Logged out"
		if err := model.api.Logout(); err != nil {
			notice = "Logged out, but the saved session could not be removed: " + err.Error()
		}
		model.leaveList(notice)
		return model, textinput.Blink
	}

	return model, nil
}

// selected returns the todo under the cursor in the filtered view
func (model Model) selected() (models.TodoResponse, bool) {
	visible := model.board.Visible()
	if model.cursor < 0 || model.cursor >= len(visible) {
		return models.TodoResponse{}, false
	}
	return visible[model.cursor], true
}

func (model *Model) clampCursor() {
	n := len(model.board.Visible())
	if model.cursor >= n {
		model.cursor = n - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
}

// startEdit opens the form, empty for a new todo or filled from existing
func (model *Model) startEdit(existing *models.TodoResponse) tea.Cmd {
	model.board.Err = ""
	model.editInputs = newEditInputs()
	if existing == nil {
		model.mode = editAdd
		model.editID = 0
	} else {
		model.mode = editExisting
		model.editID = existing.ID
		model.editInputs[fieldTitle].SetValue(existing.Title)
		model.editInputs[fieldTitle].CursorEnd()
		if existing.Description != nil {
			model.editInputs[fieldDescription].SetValue(*existing.Description)
			model.editInputs[fieldDescription].CursorEnd()
		}
	}
	model.editFocus = fieldTitle
	return model.editInputs[fieldTitle].Focus()
}

func (model *Model) focusEdit(position int) tea.Cmd {
	position = (position + len(model.editInputs)) % len(model.editInputs)
	model.editFocus = position
	model.editInputs[1-position].Blur()
	return model.editInputs[position].Focus()
}

func (model Model) handleEditKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Cancel):
		// Nothing was sent yet, so the board still holds the original
		model.mode = editNone
		model.board.Err = ""
		return model, nil

	case key.Matches(message, model.keys.NextField):
		return model, model.focusEdit(model.editFocus + 1)

	case key.Matches(message, model.keys.PrevField):
		return model, model.focusEdit(model.editFocus - 1)

	case key.Matches(message, model.keys.Submit):
		return model.submitEdit()
	}

	return model.updateFocusedInput(message)
}

func (model Model) submitEdit() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(model.editInputs[fieldTitle].Value())
	description := strings.TrimSpace(model.editInputs[fieldDescription].Value())
	if title == "" {
		model.board.Err = "Title is required"
		return model, nil
	}

	mode, id, gen := model.mode, model.editID, model.generation
	model.mode = editNone
	api := model.api

	if mode == editAdd {
		req := models.CreateTodoRequest{Title: title}
		if description != "" {
			req.Description = &description
		}
		return model, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			todo, err := api.CreateTodo(ctx, req)
			return todoSavedMsg{gen: gen, todo: todo, err: err}
		}
	}

	patch := models.UpdateTodoRequest{Title: models.Some(title)}
	if description == "" {
		patch.Description = models.Null[string]()
	} else {
		patch.Description = models.Some(description)
	}
	return model, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		todo, err := api.UpdateTodo(ctx, id, patch)
		return todoSavedMsg{gen: gen, todo: todo, err: err}
	}
}

// Commands

func (model Model) loadTodos() tea.Cmd {
	api, gen := model.api, model.generation
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		todos, err := api.ListTodos(ctx)
		return todosLoadedMsg{gen: gen, todos: todos, err: err}
	}
}

func (model Model) toggleTodo(id int64) tea.Cmd {
	api, gen := model.api, model.generation
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		todo, err := api.ToggleTodo(ctx, id)
		return todoSavedMsg{gen: gen, todo: todo, err: err}
	}
}

func (model Model) deleteTodo(id int64) tea.Cmd {
	api, gen := model.api, model.generation
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return todoDeletedMsg{gen: gen, id: id, err: api.DeleteTodo(ctx, id)}
	}
}

func (model Model) clearCompleted() tea.Cmd {
	api, gen := model.api, model.generation
	todos := append([]models.TodoResponse(nil), model.board.Todos...)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		ids, err := ClearCompleted(ctx, api, todos)
		return todosClearedMsg{gen: gen, ids: ids, err: err}
	}
}

// fail shows err as a banner, or drops to the login screen when the
// session is gone
func (model *Model) fail(err error, what string) {
	if errors.Is(err, client.ErrSessionExpired) || errors.Is(err, client.ErrNotLoggedIn) {
		model.leaveList("Your session expired, please log in again")
		return
	}
	model.board.Err = what + ": " + describe(err)
}

func describe(err error) string {
	if client.IsConflict(err) {
		return "it was changed elsewhere, press r to reload"
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// View implements tea.Model
func (model Model) View() string {
	if model.screen == screenLogin {
		return model.viewAuth()
	}
	return model.viewList()
}

func (model Model) viewAuth() string {
	theme := model.theme
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.Header)
	label := lipgloss.NewStyle().Foreground(theme.FaintText).Width(10)

	var b strings.Builder
	b.WriteString(title.Render("tickoff"))
	if model.registering {
		b.WriteString("  create account\n\n")
	} else {
		b.WriteString("  log in\n\n")
	}

	if model.notice != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.NoticeText).Render(model.notice))
		b.WriteString("\n\n")
	}

	names := map[int]string{fieldUsername: "Username", fieldEmail: "Email", fieldPassword: "Password"}
	for _, field := range model.authFields() {
		b.WriteString(label.Render(names[field]))
		b.WriteString(model.authInputs[field].View())
		b.WriteString("\n")
	}

	if model.busy {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.FaintText).Render("Contacting server…"))
	}
	if model.authErr != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.ErrorText).Render(model.authErr))
	}

	switchTo := "register"
	if model.registering {
		switchTo = "log in"
	}
	help := fmt.Sprintf("Enter submit · Tab next field · C-n %s · C-c quit", switchTo)
	b.WriteString("\n\n" + lipgloss.NewStyle().Foreground(theme.HelpText).Render(help))
	return b.String()
}

func (model Model) viewList() string {
	theme := model.theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	var b strings.Builder
	header := lipgloss.NewStyle().Bold(true).Foreground(theme.Header).Render("tickoff")
	if model.user.Username != "" {
		header += faint.Render(" · " + model.user.Username)
	}
	b.WriteString(header + "\n")
	b.WriteString(faint.Render(fmt.Sprintf("%d active · %d done · showing %s",
		model.board.ActiveCount(), model.board.CompletedCount(), model.board.Filter)))
	b.WriteString("\n\n")

	if model.board.Err != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ErrorText).Render(model.board.Err))
		b.WriteString("\n\n")
	}

	visible := model.board.Visible()
	switch {
	case model.board.Loading:
		b.WriteString(faint.Render("Loading…") + "\n")
	case len(visible) == 0:
		b.WriteString(faint.Render("Nothing here. Press a to add a todo.") + "\n")
	default:
		for i, todo := range visible {
			b.WriteString(model.renderTodo(todo, i == model.cursor))
			b.WriteString("\n")
		}
	}

	if model.mode != editNone {
		b.WriteString("\n" + model.viewEditForm())
	}

	b.WriteString("\n" + model.helpLine())
	return b.String()
}

func (model Model) renderTodo(todo models.TodoResponse, selected bool) string {
	theme := model.theme

	box := "[ ]"
	titleStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	if todo.Completed {
		box = lipgloss.NewStyle().Foreground(theme.Done).Render("[x]")
		titleStyle = titleStyle.Foreground(theme.FaintText).Strikethrough(true)
	}

	line := box + " " + titleStyle.Render(todo.Title)
	if todo.Priority > 0 {
		badge := lipgloss.NewStyle().Foreground(theme.PriorityColor(todo.Priority)).Render(fmt.Sprintf("P%d", todo.Priority))
		line += " " + badge
	}
	if todo.Description != nil && *todo.Description != "" {
		line += lipgloss.NewStyle().Foreground(theme.FaintText).Render("  " + *todo.Description)
	}

	if selected {
		return lipgloss.NewStyle().
			Background(theme.SelectedBackground).
			Foreground(theme.SelectedForeground).
			Render("> " + line)
	}
	return "  " + line
}

func (model Model) viewEditForm() string {
	heading := "New todo"
	if model.mode == editExisting {
		heading = "Edit todo"
	}
	body := lipgloss.NewStyle().Bold(true).Render(heading) + "\n" +
		model.editInputs[fieldTitle].View() + "\n" +
		model.editInputs[fieldDescription].View() + "\n" +
		lipgloss.NewStyle().Foreground(model.theme.HelpText).Render("Enter save · Tab switch field · Esc cancel")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.Border).
		Padding(0, 1).
		Render(body)
}

func (model Model) helpLine() string {
	bindings := []key.Binding{
		model.keys.Add, model.keys.Edit, model.keys.Toggle, model.keys.Delete,
		model.keys.ClearCompleted, model.keys.Filter, model.keys.Retry,
		model.keys.Logout, model.keys.Quit,
	}
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(strings.Join(parts, " · "))
}
