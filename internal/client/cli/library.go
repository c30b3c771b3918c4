package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/libhub/internal/client/models"
)

func printLibrary(a *App, l *models.Library) {
	marker := " "
	if l.IsActive {
		marker = "*"
	}
	line := fmt.Sprintf("%s %s  %s", marker, l.ID, l.Name)
	if l.ImageURL != nil && *l.ImageURL != "" {
		line += "  [" + *l.ImageURL + "]"
	}
	fmt.Fprintln(a.out, line)
}

func (a *App) Libraries(ctx context.Context) error {
	libs, err := a.libService.List(ctx)
	if err != nil {
		return err
	}
	if len(libs) == 0 {
		fmt.Fprintln(a.out, "No libraries yet. Use: create <name>")
		return nil
	}
	for _, l := range libs {
		printLibrary(a, l)
	}
	return nil
}

func (a *App) Active(ctx context.Context) error {
	l, err := a.libService.Active(ctx)
	if err != nil {
		return err
	}
	if l == nil {
		fmt.Fprintln(a.out, "No active library")
		return nil
	}
	printLibrary(a, l)
	return nil
}

func (a *App) Create(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: create <name>", errUsage)
	}
	l, err := a.libService.Create(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Library created and activated:")
	printLibrary(a, l)
	return nil
}

func (a *App) Switch(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: switch <id>", errUsage)
	}
	l, err := a.libService.Switch(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Active library is now %s\n", l.Name)
	return nil
}

func (a *App) Rename(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: rename <id> <name>", errUsage)
	}
	l, err := a.libService.Rename(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	printLibrary(a, l)
	return nil
}

func (a *App) Cover(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: cover <id> [image path]", errUsage)
	}
	path := strings.Join(args[1:], " ")
	l, err := a.libService.SetImage(ctx, args[0], path)
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Fprintln(a.out, "Cover removed")
	}
	printLibrary(a, l)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: delete <id>", errUsage)
	}
	if err := a.libService.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Library deleted")
	return nil
}
