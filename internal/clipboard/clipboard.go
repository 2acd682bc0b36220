// Package clipboard publishes rendered location sprites and location
// details to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/example/darkmapgen/internal/model"
	"github.com/example/darkmapgen/internal/render"
)

// CopyLocation renders loc with the given border and supersampling and
// writes the sprite as a PNG image. The returned detail names what was
// copied, e.g. "location 003 on PAGE001".
func CopyLocation(m *model.Map, loc *model.Location, border, aa int) (string, error) {
	s, ok := render.Generate(m, loc, border, aa)
	if !ok {
		return "", fmt.Errorf("location %03d on PAGE%03d: nothing to render", loc.Index, m.Page)
	}
	if err := WriteImage(s.Image); err != nil {
		return "", err
	}
	return fmt.Sprintf("location %03d on PAGE%03d", loc.Index, m.Page), nil
}
