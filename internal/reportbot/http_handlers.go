package reportbot

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reportdesk/internal/common"
	"reportdesk/internal/integrations/telegram"
	"reportdesk/internal/reportbot/models"
	"reportdesk/internal/reports"
	"strconv"

	"github.com/gorilla/mux"

	tgmodels "github.com/go-telegram/bot/models"
)

func getHealthcheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok")
	}
}

// getWebhookHandler decodes the platform payload and hands it to the
// dispatcher. The webhook is acknowledged with a 200 no matter what
// happened inside; only outright payload corruption earns a 400, since
// the platform redelivers on any other non-2xx
func getWebhookHandler(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to read body", err)
			return
		}
		var rawUpdate tgmodels.Update
		if err := json.Unmarshal(body, &rawUpdate); err != nil {
			common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to parse update", err)
			return
		}
		service.HandleUpdate(telegram.WrapUpdate(&rawUpdate))
		common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok")
	}
}

func getListOrdersHandler(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var status *reports.OrderStatus
		if rawStatus := r.URL.Query().Get("status"); rawStatus != "" {
			parsedStatus := reports.OrderStatus(rawStatus)
			status = &parsedStatus
		}
		limit := 0
		if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
			parsedLimit, err := strconv.Atoi(rawLimit)
			if err != nil {
				common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to parse limit", err)
				return
			}
			limit = parsedLimit
		}
		orders, err := service.Storage.ListOrders(status, limit)
		if err != nil {
			common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to list orders", err)
			return
		}
		common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", orders)
	}
}

type resolveOrderRequestBody struct {
	// ApproverId is the acting admin's chat platform user id; verified
	// against the user store before the action is honoured
	ApproverId int64 `json:"approverId"`

	// Reason is recorded and relayed to the employee on rejection
	Reason string `json:"reason"`
}

// getResolveOrderHandler drives the same orchestrator as the chat
// surfaces, with surface set to dashboard
func getResolveOrderHandler(service *Service, isApproval bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderId := mux.Vars(r)["orderId"]

		var body resolveOrderRequestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to parse body", err)
			return
		}
		if body.ApproverId == 0 {
			common.SendHttpFailResponse(w, r, http.StatusBadRequest, "approverId is required", models.ErrorInvalidInput)
			return
		}
		approver, err := service.Storage.GetUser(body.ApproverId)
		if err != nil || !approver.IsActiveAdmin() {
			common.SendHttpFailResponse(w, r, http.StatusForbidden, "approver is not an active admin", models.ErrorUserDisabled)
			return
		}

		request := ResolveOrderRequest{
			OrderId:      orderId,
			Status:       reports.StatusApproved,
			ApproverId:   approver.Id,
			ApproverName: approver.Name(),
			Surface:      reports.SurfaceDashboard,
		}
		if !isApproval {
			request.Status = reports.StatusRejected
			if body.Reason != "" {
				request.RejectionReason = &body.Reason
			}
		}

		err = service.ResolveOrder(request)
		switch {
		case err == nil:
			common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok")
		case errors.Is(err, models.ErrorAlreadyProcessed):
			common.SendHttpFailResponse(w, r, http.StatusConflict, "order already processed", models.ErrorAlreadyProcessed)
		case errors.Is(err, models.ErrorNotFound):
			common.SendHttpFailResponse(w, r, http.StatusNotFound, "order not found", models.ErrorNotFound)
		default:
			common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to resolve order", err)
		}
	}
}

func getOrderStatsHandler(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := service.Storage.GetOrderStats()
		if err != nil {
			common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to fetch stats", err)
			return
		}
		common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", stats)
	}
}
