package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactSubmit(t *testing.T) {
	database, queries, cleanup := NewTestDB()
	defer cleanup()
	mailer := newFakeMailer()
	h := NewContactHandler(queries, mailer)

	c, rec := NewTestContext(http.MethodPost, "/api/contact", map[string]any{
		"name":    " Marie ",
		"email":   "marie@example.com",
		"message": "Do you ship to Belgium?",
	})
	require.NoError(t, h.Submit(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	body, err := AssertJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, "Your message has been sent successfully! We will get back to you soon.", body["message"])

	require.Len(t, mailer.contacts, 1)
	assert.Equal(t, "Marie", mailer.contacts[0].Name)
	assert.Equal(t, 1, mailer.contactAdmin)

	var stored int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM contact_messages WHERE email = ?`, "marie@example.com").Scan(&stored))
	assert.Equal(t, 1, stored)
}

func TestContactSubmit_Validation(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()
	mailer := newFakeMailer()
	h := NewContactHandler(queries, mailer)

	tests := []struct {
		name    string
		body    map[string]any
		message string
	}{
		{"missing message", map[string]any{"name": "A", "email": "a@b.co"}, "Please provide name, email, and message"},
		{"blank name", map[string]any{"name": "  ", "email": "a@b.co", "message": "hi"}, "Please provide name, email, and message"},
		{"bad email", map[string]any{"name": "A", "email": "not-an-email", "message": "hi"}, "Please provide a valid email address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := NewTestContext(http.MethodPost, "/api/contact", tt.body)
			err := h.Submit(c)
			assert.Equal(t, http.StatusBadRequest, httpStatus(err))
			assert.Equal(t, tt.message, httpMessage(err))
		})
	}
	assert.Empty(t, mailer.contacts)
}
