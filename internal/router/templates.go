package router

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"inkpost/internal/utils"

	"github.com/gin-contrib/multitemplate"
)

// views are rendered by handlers under their file names.
var views = []string{
	"index.html",
	"post.html",
	"make-post.html",
	"register.html",
	"login.html",
	"about.html",
	"contact.html",
	"error.html",
}

// FuncMap holds the helpers available to every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"gravatar": utils.GravatarURL,
		"sanitize": utils.SanitizeHTML,
		"markdown": utils.RenderMarkdown,
		"year": func() int {
			return time.Now().Year()
		},
	}
}

// LoadTemplates registers every view together with the shared layouts and
// includes found under dir.
func LoadTemplates(dir string) (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(filepath.Join(dir, "layouts", "*.html"))
	if err != nil {
		return nil, err
	}
	if len(layouts) == 0 {
		return nil, fmt.Errorf("no layouts in %s", dir)
	}
	includes, err := filepath.Glob(filepath.Join(dir, "includes", "*.html"))
	if err != nil {
		return nil, err
	}

	funcMap := FuncMap()
	for _, view := range views {
		path := filepath.Join(dir, "views", view)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("view %s: %w", view, err)
		}

		files := make([]string, 0, len(layouts)+len(includes)+1)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, path)
		r.AddFromFilesFuncs(view, funcMap, files...)
	}
	return r, nil
}
