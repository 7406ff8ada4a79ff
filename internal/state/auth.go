package state

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/danishansari-dev/scrunchcreate/internal/models"
)

const (
	usersSlot   = "users"
	sessionSlot = "session"

	// usersScope is shared: the account list is global, only the signed-in
	// session is per visitor.
	usersScope = ""
)

var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Auth manages the stored account list and the visitor's current session.
// Passwords are bcrypt-hashed before they touch the users slot.
type Auth struct {
	mu      sync.Mutex
	kv      KV
	scope   string
	session *models.Session
	subs    subscribers
}

// NewAuth rehydrates the visitor's session slot. A missing or malformed
// slot means signed out.
func NewAuth(kv KV, scope string) *Auth {
	a := &Auth{kv: kv, scope: scope}
	var sess models.Session
	loadSlot(kv, scope, sessionSlot, &sess)
	if sess.UserID != "" {
		a.session = &sess
	}
	return a
}

// SignUp creates an account and signs it in. Duplicate emails are rejected
// case-insensitively.
func (a *Auth) SignUp(name, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	a.mu.Lock()
	defer a.mu.Unlock()

	users := a.loadUsers()
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := models.User{
		ID:       "user-" + uuid.NewString(),
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: string(hash),
	}
	users = append(users, user)
	saveSlot(a.kv, usersScope, usersSlot, users)

	a.setSession(&models.Session{UserID: user.ID, Name: user.Name, Email: user.Email})
	return nil
}

// SignIn validates credentials against the stored account list. The error
// is identical for unknown email and wrong password.
func (a *Auth) SignIn(email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, u := range a.loadUsers() {
		if !strings.EqualFold(u.Email, email) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
			return ErrInvalidCredentials
		}
		a.setSession(&models.Session{UserID: u.ID, Name: u.Name, Email: u.Email})
		return nil
	}
	return ErrInvalidCredentials
}

func (a *Auth) SignOut() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.setSession(nil)
}

// Current returns the signed-in session or nil.
func (a *Auth) Current() *models.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return nil
	}
	sess := *a.session
	return &sess
}

func (a *Auth) Subscribe(fn func()) func() {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.subs.add(fn)
}

// setSession must run with the lock held.
func (a *Auth) setSession(sess *models.Session) {
	a.session = sess
	if sess == nil {
		saveSlot(a.kv, a.scope, sessionSlot, models.Session{})
	} else {
		saveSlot(a.kv, a.scope, sessionSlot, *sess)
	}
	a.subs.notify()
}

func (a *Auth) loadUsers() []models.User {
	var users []models.User
	loadSlot(a.kv, usersScope, usersSlot, &users)
	return users
}
