package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	NotesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "rosterpad", Name: "notes_created_total", Help: "Number of notes created."},
	)
	NotesUpdated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "rosterpad", Name: "notes_updated_total", Help: "Number of note updates."},
	)
	NotesDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "rosterpad", Name: "notes_deleted_total", Help: "Number of notes deleted."},
	)
	AuditEntriesAppended = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "rosterpad", Name: "audit_entries_appended_total", Help: "Number of audit log entries appended."},
	)
	StoreSaveFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "rosterpad", Name: "store_save_failures_total", Help: "Number of failed document saves."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rosterpad", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rosterpad", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(NotesCreated)
	reg.MustRegister(NotesUpdated)
	reg.MustRegister(NotesDeleted)
	reg.MustRegister(AuditEntriesAppended)
	reg.MustRegister(StoreSaveFailures)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
