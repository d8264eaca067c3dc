package api

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/AutumnsGrove/Pixelsorting/pkg/cache"
	"github.com/AutumnsGrove/Pixelsorting/pkg/engine"
	"github.com/AutumnsGrove/Pixelsorting/pkg/errors"
	"github.com/AutumnsGrove/Pixelsorting/pkg/imageio"
	"github.com/AutumnsGrove/Pixelsorting/pkg/interval"
	"github.com/AutumnsGrove/Pixelsorting/pkg/preset"
	"github.com/AutumnsGrove/Pixelsorting/pkg/session"
	"github.com/AutumnsGrove/Pixelsorting/pkg/sortkey"
)

// resultTTL bounds how long cached sorted images live.
const resultTTL = 24 * time.Hour

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	presets := preset.Builtins(rng)

	if s.presets != nil {
		stored, err := s.presets.List(r.Context())
		if err != nil {
			s.writeError(w, err)
			return
		}
		presets = append(presets, stored...)
	}
	writeJSON(w, http.StatusOK, presets)
}

func (s *Server) handleSavePreset(w http.ResponseWriter, r *http.Request) {
	if s.presets == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "preset persistence is not configured"))
		return
	}

	var p preset.Preset
	if err := readJSON(r, &p); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.presets.Save(r.Context(), p); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.runs.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid run id"))
		return
	}

	run, err := s.runs.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// handleSort accepts a multipart upload (field "image") plus form parameters
// and responds with the sorted PNG.
func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse multipart form"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "missing image upload"))
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read upload"))
		return
	}

	params, presetName, err := s.sortParams(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	seed := time.Now().UnixNano()
	if v := r.FormValue("seed"); v != "" {
		seed, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			s.writeError(w, errors.New(errors.ErrCodeInvalidParameter, "invalid seed %q", v))
			return
		}
	}

	run := session.New(header.Filename, params.Strategy.String(), params.Key.String(), seed)
	run.Preset = presetName
	_ = s.runs.Put(r.Context(), run)

	key := cache.ResultKey(cache.Hash(raw), params, seed)
	if cached, ok, cerr := s.results.Get(r.Context(), key); cerr == nil && ok {
		run.Complete(params.Rule, 0, 0, "")
		_ = s.runs.Put(r.Context(), run)
		s.servePNG(w, run.ID, cached)
		return
	}

	g, err := imageio.Decode(bytes.NewReader(raw))
	if err != nil {
		run.Fail(err)
		_ = s.runs.Put(r.Context(), run)
		s.writeError(w, err)
		return
	}

	run.Start()
	_ = s.runs.Put(r.Context(), run)

	eng := engine.New(rand.New(rand.NewSource(seed)), engine.WithLogger(s.log))
	res, err := eng.Run(r.Context(), engine.Input{
		Grid:   g,
		Params: params,
		Source: imageio.GridSource{Grid: g},
	})
	if err != nil {
		run.Fail(err)
		_ = s.runs.Put(r.Context(), run)
		s.writeError(w, err)
		return
	}

	png, err := imageio.EncodePNG(res.Grid)
	if err != nil {
		run.Fail(err)
		_ = s.runs.Put(r.Context(), run)
		s.writeError(w, err)
		return
	}
	_ = s.results.Set(r.Context(), key, png, resultTTL)

	run.Complete(res.Rule, res.Grid.Width(), res.Grid.Height(), "")
	_ = s.runs.Put(r.Context(), run)
	s.servePNG(w, run.ID, png)
}

// sortParams resolves engine parameters from a preset and/or explicit form
// values; explicit values override the preset.
func (s *Server) sortParams(r *http.Request) (engine.Params, string, error) {
	params := engine.DefaultParams()
	presetName := r.FormValue("preset")

	if presetName != "" {
		p, err := s.resolvePreset(r, presetName)
		if err != nil {
			return engine.Params{}, "", err
		}
		params, err = p.Params()
		if err != nil {
			return engine.Params{}, "", err
		}
	}

	if v := r.FormValue("strategy"); v != "" {
		strategy, err := interval.Parse(v)
		if err != nil {
			return engine.Params{}, "", err
		}
		params.Strategy = strategy
	}
	if v := r.FormValue("key"); v != "" {
		key, err := sortkey.Parse(v)
		if err != nil {
			return engine.Params{}, "", err
		}
		params.Key = key
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"bottom_threshold", &params.BottomThreshold},
		{"upper_threshold", &params.UpperThreshold},
		{"randomness", &params.Randomness},
		{"angle", &params.Angle},
	}
	for _, f := range floats {
		if v := r.FormValue(f.name); v != "" {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return engine.Params{}, "", errors.New(errors.ErrCodeInvalidParameter,
					"invalid %s %q", f.name, v)
			}
			*f.dst = parsed
		}
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"clength", &params.CharLength},
		{"rule", &params.Rule},
	}
	for _, f := range ints {
		if v := r.FormValue(f.name); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				return engine.Params{}, "", errors.New(errors.ErrCodeInvalidParameter,
					"invalid %s %q", f.name, v)
			}
			*f.dst = parsed
		}
	}

	if err := params.Validate(); err != nil {
		return engine.Params{}, "", err
	}
	return params, presetName, nil
}

func (s *Server) resolvePreset(r *http.Request, name string) (preset.Preset, error) {
	if s.presets != nil {
		p, err := s.presets.Get(r.Context(), name)
		if err == nil {
			return p, nil
		}
		if errors.GetCode(err) != errors.ErrCodePresetNotFound {
			return preset.Preset{}, err
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	if p, ok := preset.Builtin(rng, name); ok {
		return p, nil
	}
	return preset.Preset{}, errors.New(errors.ErrCodePresetNotFound, "preset %q not found", name)
}

func (s *Server) servePNG(w http.ResponseWriter, id uuid.UUID, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Run-Id", id.String())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func readJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}
