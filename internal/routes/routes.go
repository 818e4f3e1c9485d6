package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mester-scheduler/internal/config"
	domainAppointment "github.com/BruksfildServices01/mester-scheduler/internal/domain/appointment"
	domainLead "github.com/BruksfildServices01/mester-scheduler/internal/domain/lead"
	domainMessage "github.com/BruksfildServices01/mester-scheduler/internal/domain/message"
	domainProposal "github.com/BruksfildServices01/mester-scheduler/internal/domain/proposal"
	"github.com/BruksfildServices01/mester-scheduler/internal/events"
	"github.com/BruksfildServices01/mester-scheduler/internal/handlers"
	"github.com/BruksfildServices01/mester-scheduler/internal/metrics"
	"github.com/BruksfildServices01/mester-scheduler/internal/middleware"
	"github.com/BruksfildServices01/mester-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/mester-scheduler/internal/usecase/appointment"
	ucConversation "github.com/BruksfildServices01/mester-scheduler/internal/usecase/conversation"
	ucLead "github.com/BruksfildServices01/mester-scheduler/internal/usecase/lead"
	ucProposal "github.com/BruksfildServices01/mester-scheduler/internal/usecase/proposal"
)

// Deps é o que main monta antes de registrar as rotas.
type Deps struct {
	Config  *config.Config
	Log     *slog.Logger
	Metrics *metrics.Metrics
	Events  events.Emitter
	Clock   timezone.Clock

	Appointments domainAppointment.Repository
	Proposals    domainProposal.Repository
	Leads        domainLead.Repository
	Threads      domainMessage.Repository

	// nil desliga o provedor
	MercadoPago handlers.MercadoPagoConfirmer
	Stripe      handlers.StripeConfirmer

	// nil no modo memória
	Audit handlers.AuditReader
}

// ProposalDeps também é usado pelo sweep em main.
func (d Deps) ProposalDeps() ucProposal.Deps {
	return ucProposal.Deps{
		Proposals: d.Proposals,
		Schedules: d.Appointments,
		Threads:   d.Threads,
		Leads:     d.Leads,
		Events:    d.Events,
		Metrics:   d.Metrics,
		Log:       d.Log,
		Clock:     d.Clock,
	}
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(d.Log))
	r.Use(middleware.CORSMiddleware(d.Config.CORSAllowedOrigins))

	// ======================================================
	// USE CASES - APPOINTMENTS
	// ======================================================
	getSlotsUC := ucAppointment.NewGetAvailability(d.Appointments, d.Metrics, d.Clock)

	createAppointmentUC := ucAppointment.NewCreateDirectAppointment(
		d.Appointments,
		d.Events,
		d.Metrics,
		d.Log,
		d.Clock,
	)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(d.Appointments, d.Events, d.Clock)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(d.Appointments, d.Events, d.Clock)
	noShowUC := ucAppointment.NewMarkNoShow(d.Appointments, d.Events, d.Clock)
	rescheduleUC := ucAppointment.NewRescheduleAppointment(
		d.Appointments,
		d.Events,
		d.Metrics,
		d.Log,
		d.Clock,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(d.Appointments)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(d.Appointments)

	getWorkingHoursUC := ucAppointment.NewGetWorkingHours(d.Appointments)
	updateWorkingHoursUC := ucAppointment.NewUpdateWorkingHours(d.Appointments)

	// ======================================================
	// USE CASES - LEADS / CONVERSATION
	// ======================================================
	hasAccessUC := ucLead.NewHasAccess(d.Leads)
	grantAccessUC := ucLead.NewGrantAccess(d.Leads, d.Events, d.Log, d.Clock)

	gateway := ucConversation.NewGateway(
		d.Threads,
		d.Leads,
		d.Events,
		d.Metrics,
		d.Log,
		d.Clock,
		ucConversation.ParseViewPolicy(d.Config.LeadViewPolicy),
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(getSlotsUC)
	meHandler := handlers.NewMeHandler()
	workingHoursHandler := handlers.NewWorkingHoursHandler(getWorkingHoursUC, updateWorkingHoursUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		completeAppointmentUC,
		cancelAppointmentUC,
		noShowUC,
		rescheduleUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
	)

	threadHandler := handlers.NewThreadHandler(gateway)
	proposalHandler := handlers.NewProposalHandler(d.ProposalDeps())
	leadHandler := handlers.NewLeadHandler(hasAccessUC)
	webhookHandler := handlers.NewWebhookHandler(d.MercadoPago, d.Stripe, grantAccessUC, d.Log)

	// ======================================================
	// INFRA
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PÚBLICA
		// ------------------------------
		api.GET("/professionals/:id/slots", publicHandler.Slots)

		api.POST("/webhooks/mercadopago", webhookHandler.MercadoPago)
		api.POST("/webhooks/stripe", webhookHandler.Stripe)

		// ------------------------------
		// PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config.JWTSecret))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/no-show", appointmentHandler.NoShow)
			secured.PATCH("/me/appointments/:id/reschedule", appointmentHandler.Reschedule)

			// ------------------------------
			// THREADS / MESSAGES
			// ------------------------------
			secured.POST("/threads", threadHandler.Open)
			secured.GET("/threads/:id", threadHandler.View)
			secured.POST("/threads/:id/messages", threadHandler.Send)
			secured.POST("/threads/:id/read", threadHandler.MarkRead)

			// ------------------------------
			// PROPOSALS
			// ------------------------------
			secured.POST("/threads/:id/proposals", proposalHandler.Create)
			secured.GET("/threads/:id/proposals", proposalHandler.ListByThread)
			secured.GET("/proposals/:id", proposalHandler.Get)
			secured.POST("/proposals/:id/accept", proposalHandler.Accept)
			secured.POST("/proposals/:id/reject", proposalHandler.Reject)
			secured.POST("/proposals/:id/cancel", proposalHandler.Cancel)

			// ------------------------------
			// LEADS
			// ------------------------------
			secured.GET("/leads/:jobId/access", leadHandler.Access)

			if d.Audit != nil {
				secured.GET("/me/audit-logs", handlers.NewAuditLogsHandler(d.Audit).List)
			}
		}
	}
}
