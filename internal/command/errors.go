package command

import (
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// restStatus exposes the HTTP status of a discordgo REST error to
// retrylimit's classifier.
type restStatus struct {
	err  error
	code int
}

func (e *restStatus) Error() string   { return e.err.Error() }
func (e *restStatus) Unwrap() error   { return e.err }
func (e *restStatus) StatusCode() int { return e.code }

// WithStatus wraps REST errors so retrylimit.HTTPError matches them. Other
// errors are returned unchanged.
func WithStatus(err error) error {
	var re *discordgo.RESTError
	if errors.As(err, &re) && re.Response != nil {
		return &restStatus{err: err, code: re.Response.StatusCode}
	}
	return err
}

// IsNotFound reports whether err is a REST 404.
func IsNotFound(err error) bool {
	var re *discordgo.RESTError
	return errors.As(err, &re) && re.Response != nil && re.Response.StatusCode == http.StatusNotFound
}
