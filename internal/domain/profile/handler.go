package profile

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/clinicd/clinicd/internal/protocol"
	"github.com/clinicd/clinicd/internal/record"
	"github.com/clinicd/clinicd/internal/server"
)

type Handler struct {
	svc *Service
	log zerolog.Logger
}

func NewHandler(svc *Service, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log.With().Str("component", "profile").Logger()}
}

func (h *Handler) Register(r *server.Registry) {
	r.Handle("queryPatientInfo", h.handleQueryPatientInfo)
	r.Handle("modifyPatientInfo", h.handleModifyPatientInfo)
	r.Handle("queryDoctorInfo", h.handleQueryDoctorInfo)
	r.Handle("modifyDoctorInfo", h.handleModifyDoctorInfo)
	r.Handle("queryPatientList", h.handleQueryPatientList)
	r.Handle("queryDoctorList", h.handleQueryDoctorList)
	r.Handle("modifyadminInfoClient", h.handleModifyAdminInfo)
}

func (h *Handler) handleQueryPatientInfo(ctx context.Context, sess server.Session, req *protocol.Request) {
	h.queryInfo(ctx, sess, req, "patientUsername", "patientInfo", h.svc.GetPatient)
}

func (h *Handler) handleQueryDoctorInfo(ctx context.Context, sess server.Session, req *protocol.Request) {
	h.queryInfo(ctx, sess, req, "doctorUsername", "doctorInfo", h.svc.GetDoctor)
}

func (h *Handler) queryInfo(ctx context.Context, sess server.Session, req *protocol.Request,
	usernameField, infoField string,
	get func(context.Context, string) (record.Fragment, bool, error)) {

	username, ok := req.Data.String(usernameField)
	if !ok {
		_ = sess.Send(protocol.Missing(usernameField))
		return
	}

	frag, found, err := get(ctx, username)
	if err != nil {
		h.log.Error().Err(err).Str("username", username).Msg("profile lookup failed")
		_ = sess.Send(protocol.Text("storageError"))
		return
	}
	if !found {
		_ = sess.Send(protocol.WithData("failed", map[string]any{infoField: nil}))
		return
	}
	_ = sess.Send(protocol.WithData("successful", map[string]any{infoField: frag}))
}

func (h *Handler) handleModifyPatientInfo(ctx context.Context, sess server.Session, req *protocol.Request) {
	h.modifyInfo(ctx, sess, req, "patientInfo", h.svc.SavePatient)
}

func (h *Handler) handleModifyDoctorInfo(ctx context.Context, sess server.Session, req *protocol.Request) {
	h.modifyInfo(ctx, sess, req, "doctorInfo", h.svc.SaveDoctor)
}

func (h *Handler) modifyInfo(ctx context.Context, sess server.Session, req *protocol.Request,
	infoField string, save func(context.Context, record.Fragment) (string, error)) {

	obj, ok := req.Data.Object(infoField)
	if !ok {
		_ = sess.Send(protocol.Missing(infoField))
		return
	}

	reply, err := save(ctx, record.FromBody(obj))
	if err != nil {
		h.log.Error().Err(err).Msg("profile save failed")
		_ = sess.Send(protocol.Text("storageError"))
		return
	}
	_ = sess.Send(protocol.Text(reply))
}

// handleModifyAdminInfo serves the admin screen, which edits either kind of
// profile through one command and distinguishes them by which fragment is
// present.
func (h *Handler) handleModifyAdminInfo(ctx context.Context, sess server.Session, req *protocol.Request) {
	if req.Data.Has("patientInfo") {
		h.handleModifyPatientInfo(ctx, sess, req)
		return
	}
	h.handleModifyDoctorInfo(ctx, sess, req)
}

func (h *Handler) handleQueryPatientList(ctx context.Context, sess server.Session, _ *protocol.Request) {
	patients, err := h.svc.ListPatients(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("patient roster failed")
		_ = sess.Send(protocol.Text("storageError"))
		return
	}
	_ = sess.Send(protocol.WithData("successful", protocol.Numbered("patient", patients)))
}

func (h *Handler) handleQueryDoctorList(ctx context.Context, sess server.Session, req *protocol.Request) {
	hourStr, ok := req.Data.String("time")
	if !ok {
		_ = sess.Send(protocol.Missing("time"))
		return
	}

	doctors, err := h.svc.ListDoctorsAt(ctx, record.Digits(hourStr))
	if err != nil {
		h.log.Error().Err(err).Msg("doctor roster failed")
		_ = sess.Send(protocol.Text("storageError"))
		return
	}
	_ = sess.Send(protocol.WithData("successful", protocol.Numbered("doctor", doctors)))
}
