package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
)

// Users lists every account. The server rejects non-superadmins.
func (a *App) Users(ctx context.Context) error {
	users, err := a.authService.Users(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tSTATUS")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.DisplayName(), u.Email, u.Role, u.Status)
	}
	return tw.Flush()
}

func (a *App) Status(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: status <user id> <active|inactive|suspended>", errUsage)
	}
	u, err := a.authService.SetUserStatus(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s is now %s\n", u.Email, u.Status)
	return nil
}
