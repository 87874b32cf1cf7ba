package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophinventory/internal/inbox"
)

// Watch imports files dropped into dir until ctx is cancelled.
func (a *App) Watch(ctx context.Context, dir string) error {
	w := inbox.New(dir, a.transfer, a.log)
	w.OnResult = func(r inbox.Result) {
		if r.Err != nil {
			a.println(failure(fmt.Sprintf("%s: %s", r.Path, describe(r.Err))))
			return
		}
		a.println(success(fmt.Sprintf("Imported %s as #%d", r.Item.Name, r.Item.ID)))
	}

	a.println(hint("watching " + dir + " (Ctrl+C to stop)"))
	return w.Run(ctx)
}
