package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shouni/gemini-ad-kit/pkg/domain"
	"github.com/shouni/gemini-ad-kit/pkg/imgutil"
	"github.com/shouni/gemini-ad-kit/pkg/prompt"
	"github.com/shouni/gemini-ad-kit/pkg/utils"
)

// DownloadBaseName はダウンロード時のファイル名 (拡張子なし) です。
const DownloadBaseName = "generated-ad-image"

const maxOptionsBytes = 64 << 10

// stateResponse は表示層に返すスナップショットです。
type stateResponse struct {
	State       domain.InteractionState `json:"state"`
	Image       string                  `json:"image,omitempty"`
	Error       string                  `json:"error,omitempty"`
	Reason      domain.FailureReason    `json:"reason,omitempty"`
	Loader      string                  `json:"loader,omitempty"`
	HasModel    bool                    `json:"hasModel"`
	HasProduct  bool                    `json:"hasProduct"`
	CanGenerate bool                    `json:"canGenerate"`
	Options     domain.OptionSet        `json:"options"`
}

func newStateResponse(ctx context.Context, snap domain.Snapshot) stateResponse {
	p := printerFor(ctx)
	resp := stateResponse{
		State:       snap.State,
		Image:       snap.Result.DataURL(),
		Reason:      snap.Result.Reason(),
		Error:       localizeResult(p, snap.Result),
		HasModel:    snap.HasModel,
		HasProduct:  snap.HasProduct,
		CanGenerate: snap.CanGenerate(),
		Options:     snap.Options,
	}
	if snap.State == domain.StateSubmitting {
		resp.Loader = p.Sprintf(msgLoader)
	}
	return resp
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.json(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) suggestions(w http.ResponseWriter, r *http.Request) {
	s.json(w, http.StatusOK, prompt.AllSuggestions())
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	studio := studioFromContext(r.Context())
	s.json(w, http.StatusOK, newStateResponse(r.Context(), studio.Snapshot()))
}

func (s *Server) uploadImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	role, ok := domain.ParseImageRole(chi.URLParam(r, "role"))
	if !ok {
		s.fail(w, r, http.StatusNotFound, msgUnknownRole)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, r, http.StatusRequestEntityTooLarge, msgTooLarge)
			return
		}
		s.fail(w, r, http.StatusBadRequest, msgMissingFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.WarnContext(ctx, "アップロードの読み込みに失敗しました", "role", role, "error", err)
		s.fail(w, r, http.StatusBadRequest, msgMissingFile)
		return
	}

	if s.compressUploads {
		before := len(data)
		data, _ = imgutil.ShrinkUpload(data, imgutil.DetectMIME(data), s.compressQuality)
		slog.DebugContext(ctx, "アップロード画像を圧縮しました", "role", role, "before", before, "after", len(data))
	}

	asset, err := imgutil.NewBytesAsset(header.Filename, data)
	if err != nil {
		slog.WarnContext(ctx, "画像ではないファイルを拒否しました", "role", role, "filename", header.Filename, "error", err)
		s.fail(w, r, http.StatusBadRequest, msgNotImage)
		return
	}

	studio := studioFromContext(ctx)
	if err := studio.SelectImage(role, asset); err != nil {
		s.fail(w, r, http.StatusNotFound, msgUnknownRole)
		return
	}
	slog.InfoContext(ctx, "画像を選択しました", "role", role, "mime_type", asset.MimeType, "size", asset.Size)
	s.json(w, http.StatusOK, newStateResponse(ctx, studio.Snapshot()))
}

func (s *Server) clearImage(w http.ResponseWriter, r *http.Request) {
	role, ok := domain.ParseImageRole(chi.URLParam(r, "role"))
	if !ok {
		s.fail(w, r, http.StatusNotFound, msgUnknownRole)
		return
	}
	studio := studioFromContext(r.Context())
	_ = studio.SelectImage(role, nil)
	s.json(w, http.StatusOK, newStateResponse(r.Context(), studio.Snapshot()))
}

func (s *Server) setOptions(w http.ResponseWriter, r *http.Request) {
	var opts domain.OptionSet
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxOptionsBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		s.fail(w, r, http.StatusBadRequest, msgBadOptions)
		return
	}

	studio := studioFromContext(r.Context())
	studio.SetOptions(opts)
	s.json(w, http.StatusOK, newStateResponse(r.Context(), studio.Snapshot()))
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	studio := studioFromContext(r.Context())

	// 送信後はクライアントの切断で止めない
	ctx := context.WithoutCancel(r.Context())
	_, err := studio.Generate(ctx)

	switch {
	case errors.Is(err, domain.ErrBusy):
		resp := newStateResponse(r.Context(), studio.Snapshot())
		resp.Error = printerFor(r.Context()).Sprintf(msgBusy)
		s.json(w, http.StatusConflict, resp)
	case errors.Is(err, domain.ErrInputMissing):
		s.json(w, http.StatusUnprocessableEntity, newStateResponse(r.Context(), studio.Snapshot()))
	default:
		s.json(w, http.StatusOK, newStateResponse(r.Context(), studio.Snapshot()))
	}
}

func (s *Server) result(w http.ResponseWriter, r *http.Request) {
	studio := studioFromContext(r.Context())
	snap := studio.Snapshot()
	if !snap.Result.IsImage() {
		s.fail(w, r, http.StatusNotFound, msgNoResult)
		return
	}

	mimeType, data, err := utils.ParseDataURL(snap.Result.DataURL())
	if err != nil {
		slog.ErrorContext(r.Context(), "生成画像のデコードに失敗しました", "error", err)
		s.fail(w, r, http.StatusInternalServerError, msgInternal)
		return
	}

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+DownloadBaseName+imgutil.ExtensionFor(mimeType)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
