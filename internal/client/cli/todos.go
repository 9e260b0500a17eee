package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/todokeeper/internal/client/api"
)

const listLimit = 10

var getMultiline = GetMultiline

func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	desc, err := getMultiline(a.reader, "Enter description (optional)", a.out)
	if err != nil {
		return err
	}

	var description *string
	if desc != "" {
		description = &desc
	}

	todo, err := a.api.CreateTodo(ctx, title, description)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s\n", todo.ID)
	return nil
}

// List shows the newest todos; "list next" continues after the last page.
func (a *App) List(ctx context.Context, args []string) error {
	cursor := ""
	if len(args) > 0 {
		if args[0] != "next" {
			return fmt.Errorf("%w: list [next]", errUsage)
		}
		if a.nextCursor == "" {
			fmt.Fprintln(a.out, "No more todos.")
			return nil
		}
		cursor = a.nextCursor
	}

	page, err := a.api.ListCursor(ctx, listLimit, cursor)
	if err != nil {
		return err
	}

	a.nextCursor = ""
	if page.NextCursor != nil {
		a.nextCursor = *page.NextCursor
	}

	a.printTodos(page.Data)
	if a.nextCursor != "" {
		fmt.Fprintln(a.out, "More with 'list next'.")
	}
	return nil
}

func (a *App) Page(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: page <n>", errUsage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return fmt.Errorf("%w: page number must be a positive integer", errUsage)
	}

	page, err := a.api.ListPage(ctx, n, listLimit)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Page %d\n", page.Page)
	a.printTodos(page.Data)
	return nil
}

func (a *App) Done(ctx context.Context, args []string, done bool) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: done|undone <id>", errUsage)
	}

	todo, err := a.api.SetDone(ctx, args[0], done)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s %s\n", todo.ID, doneMark(todo.Done))
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: delete <id>", errUsage)
	}

	if err := a.api.DeleteTodo(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s\n", args[0])
	return nil
}

func (a *App) printTodos(list []api.Todo) {
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No todos.")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tTITLE\tCREATED")
	for _, t := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID, doneMark(t.Done), t.Title, t.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	_ = tw.Flush()
}

func doneMark(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
