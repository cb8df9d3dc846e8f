package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/njchilds90/disinfecturl"
)

// maxLine bounds a single stdin line in url mode.
const maxLine = 1 << 20

func newSanitizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sanitize [input...]",
		Short: "Sanitize URLs or HTML fragments",
		Long: `Sanitize each input as a URL and then rewrite the hrefs of its anchors.

The mode flag selects a single stage instead: "url" runs only the URL
sanitizer, "html" only the anchor rewriter. It defaults to the mode in
the config file.

Example:
  disinfecturl sanitize 'javascript:alert(1)'
  echo '<a href="data:x">x</a>' | disinfecturl sanitize`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("mode")
			if name == "" {
				name = a.cfg.Mode
			}
			mode, err := disinfecturl.ParseMode(name)
			if err != nil {
				return err
			}
			return runSanitize(cmd, a, mode, args)
		},
	}
	cmd.Flags().String("mode", "", "auto, url or html (default from config)")
	return cmd
}

func newURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "url [url...]",
		Short: "Sanitize URLs, one per argument or stdin line",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			return runSanitize(cmd, a, disinfecturl.ModeURL, args)
		},
	}
}

func newHTMLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "html [fragment...]",
		Short: "Rewrite anchor hrefs in HTML fragments",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			return runSanitize(cmd, a, disinfecturl.ModeHTML, args)
		},
	}
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [url...]",
		Short: "Show how URLs are classified",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			inputs, err := readInputs(cmd.InOrStdin(), args, true)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()
			enc := json.NewEncoder(out)
			for _, in := range inputs {
				v := a.san.Inspect(in)
				if jsonOut {
					if err := enc.Encode(map[string]string{
						"input":  in,
						"kind":   v.Kind.String(),
						"value":  v.Value,
						"scheme": v.Scheme,
					}); err != nil {
						return err
					}
					continue
				}
				fmt.Fprintf(out, "%s\t%s\n", v.Kind, v.Value)
			}
			return nil
		},
	}
}

type sanitizeLine struct {
	Input  string  `json:"input"`
	Result *string `json:"result"`
}

func runSanitize(cmd *cobra.Command, a *app, mode disinfecturl.Mode, args []string) error {
	inputs, err := readInputs(cmd.InOrStdin(), args, mode == disinfecturl.ModeURL)
	if err != nil {
		return err
	}
	jsonOut, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	for _, in := range inputs {
		res, ok := a.san.SanitizeAs(mode, in)
		if jsonOut {
			line := sanitizeLine{Input: in}
			if ok {
				line.Result = &res
			}
			if err := enc.Encode(line); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintln(out, res)
	}
	return nil
}

// readInputs returns args, or stdin when there are none. Stdin is split
// into lines when byLine is set and read whole otherwise.
func readInputs(r io.Reader, args []string, byLine bool) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if !byLine {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return []string{strings.TrimSuffix(string(b), "\n")}, nil
	}

	var inputs []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for sc.Scan() {
		inputs = append(inputs, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return inputs, nil
}
