package httpapi

import (
	"errors"
	"net/http"

	"github.com/nextlevelbuilder/pbgate/internal/plugin"
)

var errMissingName = errors.New("plugin name is required")

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "pong"})
}

func (s *Server) handleBotList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"bots": s.registry.List()})
}

func (s *Server) handleBotDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Uin      int64 `json:"uin"`
		Protocol int32 `json:"protocol"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.registry.Delete(req.Uin); err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleQRCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeviceSeed int64 `json:"device_seed"`
	}
	if r.ContentLength > 0 {
		if err := decode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	res, err := s.sessions.CreateQRCode(r.Context(), req.DeviceSeed)
	if err != nil {
		fail(w, err)
		return
	}
	// []byte fields render as base64 in JSON.
	writeJSON(w, http.StatusOK, map[string][]byte{
		"sig":   res.Sig,
		"image": res.Image,
	})
}

func (s *Server) handleQRQuery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Sig []byte `json:"sig"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.sessions.QueryQRCode(r.Context(), req.Sig)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleQRList(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Sig   []byte `json:"sig"`
		Image []byte `json:"image"`
	}
	list := s.sessions.ListQRCodes()
	out := make([]entry, 0, len(list))
	for _, q := range list {
		out = append(out, entry{Sig: q.Sig, Image: q.Image})
	}
	writeJSON(w, http.StatusOK, map[string]any{"qrcodes": out})
}

func (s *Server) handleQRDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Sig []byte `json:"sig"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.sessions.DeleteQRCode(req.Sig); err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type passwordReq struct {
	Uin        int64  `json:"uin"`
	Protocol   int32  `json:"protocol"`
	Password   string `json:"password"`
	Ticket     string `json:"ticket"`
	Code       string `json:"code"`
	DeviceSeed int64  `json:"device_seed"`
}

func (s *Server) handlePasswordCreate(w http.ResponseWriter, r *http.Request) {
	var req passwordReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.sessions.PasswordLogin(r.Context(), req.Uin, req.Protocol, req.Password, req.DeviceSeed)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRequestSMS(w http.ResponseWriter, r *http.Request) {
	var req passwordReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.sessions.RequestSMS(r.Context(), req.Uin, req.Protocol)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSubmitSMS(w http.ResponseWriter, r *http.Request) {
	var req passwordReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.sessions.SubmitSMS(r.Context(), req.Uin, req.Protocol, req.Code)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSubmitTicket(w http.ResponseWriter, r *http.Request) {
	var req passwordReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.sessions.SubmitTicket(r.Context(), req.Uin, req.Protocol, req.Ticket)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handlePasswordList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"logins": s.sessions.ListPending()})
}

func (s *Server) handlePasswordDelete(w http.ResponseWriter, r *http.Request) {
	var req passwordReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.sessions.DeletePending(req.Uin, req.Protocol); err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type pluginBody struct {
	Disabled bool     `json:"disabled"`
	URLs     []string `json:"urls"`
}

func (s *Server) handlePluginSave(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string     `json:"name"`
		Plugin pluginBody `json:"plugin"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, errMissingName)
		return
	}
	p := &plugin.Plugin{Name: req.Name, Disabled: req.Plugin.Disabled, URLs: req.Plugin.URLs}
	if err := s.store.Save(p); err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handlePluginList(w http.ResponseWriter, r *http.Request) {
	plugins, err := s.store.Load()
	if err != nil {
		fail(w, err)
		return
	}
	out := make(map[string]pluginBody, len(plugins))
	for _, p := range plugins {
		out[p.Name] = pluginBody{Disabled: p.Disabled, URLs: p.URLs}
	}
	writeJSON(w, http.StatusOK, map[string]any{"plugins": out})
}

func (s *Server) handlePluginDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.store.Delete(req.Name); err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
