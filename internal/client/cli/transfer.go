package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/gophinventory/internal/client/models"
	"github.com/dmitrijs2005/gophinventory/internal/client/services"
	"github.com/dmitrijs2005/gophinventory/internal/filex"
)

// Export destinations.
const (
	DestDownloads = "downloads"
	DestCache     = "cache"
	DestS3        = "s3"
)

// sinkFor maps a destination to a sink. Anything that is not a named
// destination is a path: an existing directory receives the conventional
// file name, any other path is used as the file name itself.
func (a *App) sinkFor(ctx context.Context, dest string) (services.Sink, error) {
	switch strings.ToLower(dest) {
	case "", "d", DestDownloads:
		return filex.DownloadsDir(a.config.DownloadsDir), nil
	case "c", DestCache:
		return filex.NewDir(a.config.CacheDir), nil
	case "s", DestS3:
		return a.newS3(ctx)
	}
	if fi, err := os.Stat(dest); err == nil && fi.IsDir() {
		return filex.NewDir(dest), nil
	}
	return filex.File{Path: dest}, nil
}

// ExportTo encodes item id and writes it to dest.
func (a *App) ExportTo(ctx context.Context, id int64, dest string) error {
	sink, err := a.sinkFor(ctx, dest)
	if err != nil {
		return err
	}

	var loc string
	err = withSpinner(a.out, "Encrypting and saving...", func() error {
		var err error
		loc, err = a.transfer.Export(ctx, id, sink)
		return err
	})
	if err != nil {
		return err
	}
	a.println(success("Exported to " + loc))
	return nil
}

func (a *App) Export(ctx context.Context, args []string) error {
	id, err := a.readID(args, "Enter item id to export")
	if err != nil {
		return err
	}

	dest := ""
	if len(args) > 1 {
		dest = args[1]
	} else {
		dest, err = GetSimpleText(a.reader, "Save to (d)ownloads, (c)ache, (s)3 or a path [downloads]", a.out)
		if err != nil {
			return err
		}
	}
	return a.ExportTo(ctx, id, dest)
}

// ImportRef imports a local path, or an object when ref is an s3:// URL
// or fromS3 is set.
func (a *App) ImportRef(ctx context.Context, ref string, fromS3 bool) error {
	var src services.Source = filex.Dir{}
	if fromS3 || strings.HasPrefix(ref, "s3://") {
		s3, err := a.newS3(ctx)
		if err != nil {
			return err
		}
		src = s3
	}

	var item models.Item
	err := withSpinner(a.out, "Decrypting...", func() error {
		var err error
		item, err = a.transfer.ImportFrom(ctx, src, ref)
		return err
	})
	if err != nil {
		return err
	}
	a.println(success(fmt.Sprintf("Imported %s as #%d", item.Name, item.ID)))
	return nil
}

// Import asks for a file until one imports or the user enters nothing.
// Each failure is reported and nothing is stored for it.
func (a *App) Import(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return a.ImportRef(ctx, args[0], false)
	}

	for {
		ref, err := GetSimpleText(a.reader, "File path or s3://bucket/key (empty to cancel)", a.out)
		if err != nil || ref == "" {
			return err
		}
		err = a.ImportRef(ctx, ref, false)
		if err == nil {
			return nil
		}
		a.println(failure(describe(err)))
		a.println(hint("choose another file or press Enter to cancel"))
	}
}

func (a *App) Share(ctx context.Context, args []string) error {
	id, err := a.readID(args, "Enter item id to share")
	if err != nil {
		return err
	}
	s, err := a.share.Share(ctx, id)
	if err != nil {
		return err
	}
	a.println("Subject: " + s.Subject)
	a.println()
	fmt.Fprint(a.out, s.Text)
	return nil
}

// ShareTo writes the share text of id to path.
func (a *App) ShareTo(ctx context.Context, id int64, path string) error {
	s, err := a.share.Share(ctx, id)
	if err != nil {
		return err
	}
	if err := filex.WriteFileAtomic(path, []byte(s.Text)); err != nil {
		return err
	}
	a.println(success("Share text written to " + path))
	return nil
}
