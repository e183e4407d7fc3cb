package serve

import (
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	apierr "github.com/YgNiko/openvino-prep/pkg/errors"
	"github.com/YgNiko/openvino-prep/pkg/omz"
	"github.com/YgNiko/openvino-prep/pkg/workspace"
)

// model trees are addressed as <group>/<name>, e.g. public/mobilenet-v2-pytorch
const (
	NameRegexp = `[a-z0-9]+(?:[._-][a-z0-9]+)*/(?:[a-zA-Z0-9]+(?:[._-][a-zA-Z0-9]+)*)`
	PathRegexp = `.+`
)

type Server struct {
	Workspace *workspace.Workspace
	InfoCache *omz.InfoCache
}

func (s *Server) route() http.Handler {
	m := mux.NewRouter()
	m = m.StrictSlash(true)
	// healthy
	m.Methods("GET").Path("/healthz").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	// model index
	m.Methods("GET").Path("/").HandlerFunc(s.GetIndex)

	model := m.PathPrefix("/{name:" + NameRegexp + "}").Subrouter()
	model.Methods("GET").Path("/manifest").HandlerFunc(s.GetManifest)
	model.Methods("GET").Path("/info").HandlerFunc(s.GetInfo)
	model.Methods("GET").Path("/files/{path:" + PathRegexp + "}").HandlerFunc(s.GetFile)

	return m
}

func (s *Server) GetIndex(w http.ResponseWriter, r *http.Request) {
	models, err := s.Workspace.Models(r.Context())
	if err != nil {
		ResponseError(w, err)
		return
	}
	ResponseOK(w, models)
}

func (s *Server) GetManifest(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	manifest, err := s.Workspace.Scan(r.Context(), name)
	if err != nil {
		ResponseError(w, err)
		return
	}
	if len(manifest.Files) == 0 {
		ResponseError(w, apierr.NewModelUnknownError(name))
		return
	}
	ResponseOK(w, manifest)
}

func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if s.InfoCache == nil {
		ResponseError(w, apierr.NewUnsupportedError("metadata cache not available"))
		return
	}
	info, ok, err := s.InfoCache.Get(path.Base(name))
	if err != nil {
		ResponseError(w, err)
		return
	}
	if !ok {
		ResponseError(w, apierr.NewModelUnknownError(name))
		return
	}
	ResponseOK(w, info)
}

func (s *Server) GetFile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name, file := vars["name"], vars["path"]

	rel := path.Join(name, file)
	if strings.Contains(rel, "..") {
		ResponseError(w, apierr.NewParameterInvalidError("invalid path"))
		return
	}
	local := filepath.Join(s.Workspace.ModelDir(), filepath.FromSlash(rel))
	http.ServeFile(w, r, local)
}
