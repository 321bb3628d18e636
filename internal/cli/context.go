package cli

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/expert-scheduler/internal/client"
)

var ErrNoExpert = errors.New("no expert selected: run login or pass --expert")

// Context is handed to every command's Run.
type Context struct {
	API      *client.API
	Storage  client.Storage
	Store    *client.Store
	Commands *client.Commands
	Log      *zap.Logger
	Out      io.Writer
}

// NewContext wires the client for expertID. An empty expertID falls back to
// the user id saved by login.
func NewContext(api *client.API, storage client.Storage, expertID string, log *zap.Logger, out io.Writer) *Context {
	if expertID == "" {
		expertID, _ = storage.Get(client.KeyUserID)
	}
	store := client.NewStore(api, expertID)
	return &Context{
		API:      api,
		Storage:  storage,
		Store:    store,
		Commands: client.NewCommands(store, log),
		Log:      log,
		Out:      out,
	}
}

func (c *Context) requireExpert() error {
	if c.Store.ExpertID() == "" {
		return ErrNoExpert
	}
	return nil
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}
