// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package webhost

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gogpu/tilefish"
	intImage "github.com/gogpu/tilefish/internal/image"
)

// Controller is the part of tilefish.Controller the handler drives.
type Controller interface {
	Regenerate(ctx context.Context) error
	State() tilefish.State
	Generation() uint64
}

//go:embed page.html
var pageHTML string

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

type tileView struct {
	Name          string
	Label         string
	Src           template.URL
	Width, Height int
}

type pageView struct {
	Visible         bool
	Pending         bool
	BackgroundStyle template.CSS
	Tiles           []tileView
}

type stateView struct {
	State      string   `json:"state"`
	Generation uint64   `json:"generation"`
	Visible    bool     `json:"visible"`
	Attached   []string `json:"attached"`
}

type handler struct {
	host *Host
	ctrl Controller
}

// Handler returns the HTTP interface of the host, triggering regeneration
// through ctrl.
func (h *Host) Handler(ctrl Controller) http.Handler {
	hd := &handler{host: h, ctrl: ctrl}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/", hd.page)
	r.Get("/state", hd.state)
	r.Get("/background", hd.background)
	r.Get("/tiles/{variant}", hd.tile)
	r.Get("/tiles/{variant}/preview", hd.preview)
	r.Post("/regenerate", hd.regenerate)
	return r
}

func (hd *handler) page(w http.ResponseWriter, r *http.Request) {
	f, visible := hd.host.Frame()
	view := pageView{
		Visible: visible,
		Pending: hd.ctrl.State() == tilefish.Generating,
	}
	if visible {
		view.BackgroundStyle = template.CSS("background-image: url(" + f.Background().DataURI() + ")")
		for _, v := range tilefish.Variants {
			e := f.Tile(v)
			view.Tiles = append(view.Tiles, tileView{
				Name:   v.String(),
				Label:  v.Label(),
				Src:    template.URL(e.DataURI()),
				Width:  e.Width,
				Height: e.Height,
			})
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (hd *handler) state(w http.ResponseWriter, r *http.Request) {
	_, visible := hd.host.Frame()
	view := stateView{
		State:      hd.ctrl.State().String(),
		Generation: hd.ctrl.Generation(),
		Visible:    visible,
		Attached:   []string{},
	}
	if visible {
		for _, v := range tilefish.Variants {
			view.Attached = append(view.Attached, v.String())
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(view)
}

func (hd *handler) background(w http.ResponseWriter, r *http.Request) {
	f, visible := hd.host.Frame()
	if !visible {
		http.Error(w, "no image", http.StatusNotFound)
		return
	}
	hd.writeImage(w, r, f.Background())
}

// lookup resolves the {variant} parameter against the attached frame.
func (hd *handler) lookup(w http.ResponseWriter, r *http.Request) (tilefish.EncodedImage, bool) {
	v, err := tilefish.ParseVariant(chi.URLParam(r, "variant"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return tilefish.EncodedImage{}, false
	}
	f, visible := hd.host.Frame()
	if !visible {
		http.Error(w, "no image", http.StatusNotFound)
		return tilefish.EncodedImage{}, false
	}
	return f.Tile(v), true
}

func (hd *handler) tile(w http.ResponseWriter, r *http.Request) {
	e, ok := hd.lookup(w, r)
	if !ok {
		return
	}
	hd.writeImage(w, r, e)
}

func (hd *handler) writeImage(w http.ResponseWriter, r *http.Request, e tilefish.EncodedImage) {
	w.Header().Set("Content-Type", e.MIMEType())
	w.Header().Set("Content-Length", strconv.Itoa(len(e.Data)))
	w.Header().Set("Cache-Control", "no-store")
	if r.URL.Query().Get("download") != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+e.Filename(hd.host.prefix)+`"`)
	}
	_, _ = w.Write(e.Data)
}

func (hd *handler) preview(w http.ResponseWriter, r *http.Request) {
	e, ok := hd.lookup(w, r)
	if !ok {
		return
	}
	pm, err := tilefish.Decode(e)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	q := r.URL.Query()
	img := tilefish.Preview(pm, e.Variant, tilefish.PreviewOptions{
		Cols:    queryInt(q.Get("cols"), 3),
		Rows:    queryInt(q.Get("rows"), 3),
		Scale:   queryInt(q.Get("scale"), 1),
		Caption: true,
	})
	data, err := intImage.EncodeBytes(img, intImage.FormatPNG)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", intImage.FormatPNG.MIMEType())
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(data)
}

func (hd *handler) regenerate(w http.ResponseWriter, r *http.Request) {
	// A closed tab must not abort the cycle and leave the page blank.
	err := hd.ctrl.Regenerate(context.WithoutCancel(r.Context()))
	switch {
	case errors.Is(err, tilefish.ErrBusy):
		http.Error(w, err.Error(), http.StatusConflict)
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// queryInt parses a repeat count or scale, falling back to def. Preview
// clamps the result.
func queryInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return min(n, tilefish.MaxPreviewRepeat)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		tilefish.Logger().LogAttrs(r.Context(), slog.LevelDebug, "webhost: request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
