package server

import (
	_ "embed"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"palette-studio/internal/colorspace"
	"palette-studio/internal/palette"
)

//go:embed web/index.html
var indexHTML []byte

type colorView struct {
	colorspace.Color
	Formats colorspace.Formats `json:"formats"`
}

func viewOf(c colorspace.Color) colorView {
	return colorView{Color: c, Formats: colorspace.FormatsOf(c)}
}

// stateResponse is the JSON body returned by every studio endpoint.
type stateResponse struct {
	Base          colorView           `json:"base"`
	Palette       []colorView         `json:"palette"`
	Selection     palette.Selection   `json:"selection"`
	Shades        [][]colorView       `json:"shades"`
	SelectedColor *colorspace.Formats `json:"selected_color"`
	SelectedShade *colorspace.Formats `json:"selected_shade"`
	Accepted      *bool               `json:"accepted,omitempty"`
}

func stateOf(st *palette.Studio) stateResponse {
	resp := stateResponse{
		Base:      viewOf(st.Base()),
		Selection: st.Selection(),
	}
	for _, c := range st.Palette() {
		resp.Palette = append(resp.Palette, viewOf(c))
	}
	if shades, ok := st.Shades(); ok {
		for row := 0; row < palette.ShadeRows; row++ {
			group := shades.Group(row)
			views := make([]colorView, len(group))
			for i, c := range group {
				views[i] = viewOf(c)
			}
			resp.Shades = append(resp.Shades, views)
		}
	}
	if f, ok := st.SelectedColorFormats(); ok {
		resp.SelectedColor = &f
	}
	if f, ok := st.SelectedShadeFormats(); ok {
		resp.SelectedShade = &f
	}
	return resp
}

// baseRequest carries either h/s/l or hex.
type baseRequest struct {
	H   *int    `json:"h"`
	S   *int    `json:"s"`
	L   *int    `json:"l"`
	Hex *string `json:"hex"`
}

func (s *Server) index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (s *Server) getStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.stats.Snapshot(s.store.Len()))
}

func (s *Server) getState(c *gin.Context) {
	var resp stateResponse
	entryFrom(c).With(func(st *palette.Studio) {
		resp = stateOf(st)
	})
	c.JSON(http.StatusOK, resp)
}

func (s *Server) putBase(c *gin.Context) {
	var req baseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	accepted := true
	switch {
	case req.Hex != nil:
	case req.H != nil && req.S != nil && req.L != nil:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "provide hex or all of h, s, l"})
		return
	}

	var resp stateResponse
	entryFrom(c).With(func(st *palette.Studio) {
		if req.Hex != nil {
			accepted = st.SetBaseHex(*req.Hex)
		} else {
			st.SetBase(*req.H, *req.S, *req.L)
		}
		resp = stateOf(st)
	})
	if !accepted {
		s.stats.RecordHexRejected()
	}
	resp.Accepted = &accepted
	c.JSON(http.StatusOK, resp)
}

func (s *Server) selectColor(c *gin.Context) {
	i, ok := intParam(c, "index")
	if !ok {
		return
	}

	var (
		resp stateResponse
		err  error
	)
	entryFrom(c).With(func(st *palette.Studio) {
		if err = st.SelectColor(i); err == nil {
			resp = stateOf(st)
		}
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) selectShade(c *gin.Context) {
	row, ok := intParam(c, "row")
	if !ok {
		return
	}
	i, ok := intParam(c, "index")
	if !ok {
		return
	}

	var (
		resp stateResponse
		err  error
	)
	entryFrom(c).With(func(st *palette.Studio) {
		if err = st.SelectShade(row, i); err == nil {
			resp = stateOf(st)
		}
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) clearSelection(c *gin.Context) {
	var resp stateResponse
	entryFrom(c).With(func(st *palette.Studio) {
		st.ClearSelection()
		resp = stateOf(st)
	})
	c.JSON(http.StatusOK, resp)
}

func (s *Server) copyText(c *gin.Context) {
	target := palette.CopyTarget(c.DefaultQuery("target", string(palette.TargetColor)))
	format, err := colorspace.ParseFormat(c.DefaultQuery("format", string(colorspace.FormatHex)))
	if err != nil {
		writeError(c, err)
		return
	}

	var text string
	entryFrom(c).With(func(st *palette.Studio) {
		text, err = st.Copy(target, format)
	})
	if err != nil {
		writeError(c, err)
		return
	}

	s.stats.RecordCopy(string(target), string(format))
	c.JSON(http.StatusOK, gin.H{"text": text, "target": target, "format": format})
}

func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be an integer"})
		return 0, false
	}
	return v, true
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errors.Cause(err) {
	case palette.ErrIndexOutOfRange, palette.ErrUnknownTarget, colorspace.ErrUnknownFormat:
		status = http.StatusBadRequest
	case palette.ErrNoColorSelected:
		status = http.StatusConflict
		if c.FullPath() == "/api/copy" {
			status = http.StatusNotFound
		}
	case palette.ErrNoShadeSelected:
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
