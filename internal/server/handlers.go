package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/openopus/ng-pane-manager2-sub000/pkg/buildinfo"
	"github.com/openopus/ng-pane-manager2-sub000/pkg/builder"
	errs "github.com/openopus/ng-pane-manager2-sub000/pkg/errors"
	"github.com/openopus/ng-pane-manager2-sub000/pkg/layout"
	"github.com/openopus/ng-pane-manager2-sub000/pkg/render/dot"
	"github.com/openopus/ng-pane-manager2-sub000/pkg/template"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	info := buildinfo.Get()
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": info.Version,
		"commit":  info.Commit,
		"store":   s.layouts.Store().Backend(),
	})
}

func (s *Server) listLayouts(w http.ResponseWriter, r *http.Request) {
	names, err := s.layouts.Names(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"layouts": names})
}

func quoteETag(tag string) string { return `"` + tag + `"` }

// matchETag reports whether an If-None-Match or If-Match header value
// names tag. "*" matches anything.
func matchETag(header, tag string) bool {
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimPrefix(strings.TrimSpace(part), "W/")
		if part == "*" || part == quoteETag(tag) {
			return true
		}
	}
	return false
}

func (s *Server) getLayout(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	root, etag, err := s.layouts.Load(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && matchETag(inm, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	s.writeLayout(w, r, http.StatusOK, root, etag)
}

// writeLayout encodes root as the requested template format.
func (s *Server) writeLayout(w http.ResponseWriter, r *http.Request, status int, root *layout.Root, etag string) {
	format := template.FormatJSON
	if f := r.URL.Query().Get("format"); f != "" {
		var err error
		if format, err = template.ParseFormat(f); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	var buf bytes.Buffer
	if err := template.Write(root, &buf, format); err != nil {
		s.writeError(w, r, err)
		return
	}
	if format == template.FormatTOML {
		w.Header().Set("Content-Type", "application/toml")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	if etag != "" {
		w.Header().Set("ETag", quoteETag(etag))
	}
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// readTemplate decodes a template body. application/toml selects TOML,
// anything else is JSON.
func readTemplate(w http.ResponseWriter, r *http.Request) (*template.Template, error) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/toml") {
		return template.DecodeTOML(body)
	}
	return template.DecodeJSON(body)
}

// edit runs fn as one builder transaction on the named layout and saves
// the result. missingOK starts from an empty layout when none is stored.
// A non-empty ifMatch must name the stored layout's ETag.
func (s *Server) edit(ctx context.Context, name string, missingOK bool, ifMatch string, fn func(*builder.Builder) error) (*layout.Root, string, error) {
	unlock := s.locks.Lock(name)
	defer unlock()

	root, etag, err := s.layouts.Load(ctx, name)
	missing := errs.Is(err, errs.ErrCodeLayoutNotFound)
	if missing && missingOK {
		root, err = layout.NewRoot(nil), nil
	}
	if err != nil {
		return nil, "", err
	}
	if ifMatch != "" && (missing || !matchETag(ifMatch, etag)) {
		return nil, "", errPreconditionFailed
	}

	b := builder.From(root, builder.WithLogger(s.logger))
	if res := b.Build(fn); !res.OK() {
		return nil, "", res.Err
	}
	etag, err = s.layouts.Save(ctx, name, b.Root())
	if err != nil {
		return nil, "", err
	}
	return b.Root(), etag, nil
}

func (s *Server) putLayout(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := errs.ValidateLayoutName(name); err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := readTemplate(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	root, etag, err := s.edit(r.Context(), name, true, r.Header.Get("If-Match"), func(b *builder.Builder) error {
		return b.Load(t)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeLayout(w, r, http.StatusOK, root, etag)
}

func (s *Server) deleteLayout(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	unlock := s.locks.Lock(name)
	defer unlock()

	if err := s.layouts.Delete(r.Context(), name); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// childRequest is the body of POST /layouts/{name}/children.
type childRequest struct {
	ID       string `json:"id"`
	Template string `json:"template"`
	Extra    any    `json:"extra"`
	Gravity  string `json:"gravity"`
	Group    string `json:"group"`
}

func (c childRequest) leaf() (*layout.Leaf, error) {
	var opts []layout.Option
	if c.Gravity != "" {
		g, err := layout.ParseGravity(c.Gravity)
		if err != nil {
			return nil, err
		}
		opts = append(opts, layout.WithGravity(g))
	}
	if c.Group != "" {
		opts = append(opts, layout.WithGroup(c.Group))
	}
	id := c.ID
	if id == "" {
		id = uuid.NewString()
	}
	return layout.NewLeaf(id, c.Template, c.Extra, opts...)
}

func (s *Server) placeChild(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := errs.ValidateLayoutName(name); err != nil {
		s.writeError(w, r, err)
		return
	}

	var req childRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode child"))
		return
	}
	leaf, err := req.leaf()
	if err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "child"))
		return
	}

	root, etag, err := s.edit(r.Context(), name, true, "", func(b *builder.Builder) error {
		return b.Add(leaf)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", r.URL.Path+"?leaf="+leaf.ID())
	s.writeLayout(w, r, http.StatusCreated, root, etag)
}

func (s *Server) simplifyLayout(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	root, etag, err := s.edit(r.Context(), name, false, "", func(b *builder.Builder) error {
		return b.Simplify()
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeLayout(w, r, http.StatusOK, root, etag)
}

func (s *Server) layoutDOT(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	root, _, err := s.layouts.Load(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	src := dot.ToDOT(root, dot.Options{Detailed: r.URL.Query().Get("detailed") == "true"})

	switch f := r.URL.Query().Get("format"); f {
	case "", "dot":
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		w.Write([]byte(src))
	case "svg":
		svg, err := dot.RenderSVG(r.Context(), src)
		if err != nil {
			s.writeError(w, r, errs.Wrap(errs.ErrCodeInternal, err, "render svg"))
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write(svg)
	default:
		s.writeError(w, r, errs.New(errs.ErrCodeInvalidFormat, "unsupported diagram format %q", f))
	}
}
