package commands

import (
	"context"
	"os"
	"strings"

	"todo/export"
)

func init() {
	Register(&Command{
		Name:        "/export",
		Description: "Export the task list as json, csv or pdf, to a file or the terminal",
		Params: []Param{
			{Name: "format", Type: ParamTypeString, Description: "One of: json, csv, pdf", Required: true},
			{Name: "path", Type: ParamTypeString, Description: "File to write; omit to print (json and csv only)", Required: false},
		},
		Handler: func(ctx context.Context, args []string) bool {
			s := activeStore()
			if s == nil {
				return false
			}
			if len(args) == 0 {
				printf("Usage: /export <%s> [path]\n", strings.Join(export.Formats, "|"))
				return false
			}

			format := strings.ToLower(args[0])
			if len(args) < 2 {
				if format == "pdf" {
					printf("Error: pdf export needs a file path\n")
					return false
				}
				if err := export.Write(out, format, s.Tasks()); err != nil {
					printf("Error: %v\n", err)
				}
				return false
			}

			path := args[1]
			f, err := os.Create(path)
			if err != nil {
				printf("Error: %v\n", err)
				return false
			}
			if err := export.Write(f, format, s.Tasks()); err != nil {
				f.Close()
				os.Remove(path)
				printf("Error: %v\n", err)
				return false
			}
			if err := f.Close(); err != nil {
				printf("Error: %v\n", err)
				return false
			}

			printf("Exported %d task(s) to %s\n", s.Total(), path)
			return false
		},
	})
}
