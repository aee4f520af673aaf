// Package metrics defines and registers all custom Prometheus metrics for the
// job board API. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobboard"

// ── Job metrics ───────────────────────────────────────────────────────────────

// JobsCreatedTotal counts newly created job postings.
// Label:
//   - job_type: "full-time", "part-time", "contract", or "internship"
var JobsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_created_total",
		Help:      "Total number of job postings created, by job type.",
	},
	[]string{"job_type"},
)

// JobsIdempotentReplaysTotal counts create requests collapsed onto an
// existing job via the request id.
var JobsIdempotentReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_idempotent_replays_total",
		Help:      "Total number of job create requests answered from an existing request id.",
	},
)

// ── Application metrics ───────────────────────────────────────────────────────

// ApplicationsCreatedTotal counts submitted applications.
var ApplicationsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_created_total",
		Help:      "Total number of applications submitted.",
	},
)

// ApplicationStatusTransitionsTotal counts review state machine transitions.
// Labels:
//   - from: the previous status
//   - to: the new status
var ApplicationStatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "application_status_transitions_total",
		Help:      "Total number of application status transitions, by from/to pair.",
	},
	[]string{"from", "to"},
)

// ApplicationErrorsTotal counts application operations that failed.
// Label:
//   - reason: short description of the failure (e.g. "already_applied",
//     "upload_failed", "relation_repair")
var ApplicationErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "application_errors_total",
		Help:      "Total number of failed application operations, by reason.",
	},
	[]string{"reason"},
)

// ResumeUploadDuration measures how long a resume upload to blob storage takes.
var ResumeUploadDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "resume_upload_duration_seconds",
		Help:      "Duration of resume uploads to blob storage.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the current number of audit events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
