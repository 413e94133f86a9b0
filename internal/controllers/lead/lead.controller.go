package leadController

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"server/internal/events"
	"server/internal/logger"
	"server/internal/repositories"
	"server/internal/services"
	"strconv"
	"time"

	. "server/internal/models"

	"github.com/go-playground/validator/v10"
)

type LeadController struct {
	leadRepo repositories.LeadRepository
	notifier *services.NotifierService
	eventBus *events.EventBus
	validate *validator.Validate
	log      logger.Logger
}

func New(
	leadRepo repositories.LeadRepository,
	notifier *services.NotifierService,
	eventBus *events.EventBus,
) *LeadController {
	return &LeadController{
		leadRepo: leadRepo,
		notifier: notifier,
		eventBus: eventBus,
		validate: validator.New(),
		log:      logger.New("LeadController"),
	}
}

// CreateLead persists a submission and returns the stored row. Only field
// presence is checked server-side; format validation stays in the browser.
// Notification and event publish are side effects that cannot fail the call.
func (c *LeadController) CreateLead(ctx context.Context, input LeadInput) (*Lead, error) {
	log := c.log.Function("CreateLead")

	if err := c.validate.Struct(input); err != nil {
		var validationErrors validator.ValidationErrors
		field := ""
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			field = validationErrors[0].Field()
		}
		log.Info("rejected lead submission", "missingField", field)
		return nil, &ValidationError{Field: field}
	}

	source := input.Source
	if source == "" {
		source = SourceDirect
	}

	lead := &Lead{
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		InsuranceType: input.InsuranceType,
		Message:       input.Message,
		Source:        source,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}

	if err := c.leadRepo.Create(ctx, lead); err != nil {
		return nil, &StorageError{Op: "create lead", Err: err}
	}

	log.Info("Captured lead", "leadID", lead.ID, "insuranceType", lead.InsuranceType, "source", lead.Source)

	c.notifier.LeadCreated(*lead)
	c.publishCreated(*lead)

	return lead, nil
}

func (c *LeadController) publishCreated(lead Lead) {
	log := c.log.Function("publishCreated")

	event := events.Event{
		Type: events.TypeLeadCreated,
		Data: map[string]any{
			"id":             lead.ID,
			"name":           lead.Name,
			"insurance_type": lead.InsuranceType,
			"source":         lead.Source,
			"created_at":     lead.CreatedAt,
		},
		Timestamp: time.Now(),
	}

	if err := c.eventBus.Publish(events.ChannelLeads, event); err != nil {
		log.Er("failed to publish lead event", err, "leadID", lead.ID)
	}
}

// SearchLeads returns all leads for an empty query, newest first; otherwise
// leads matching the query as a substring of name, email, phone, or insurance
// type. Zero matches is an empty slice, not an error.
func (c *LeadController) SearchLeads(ctx context.Context, query string) ([]Lead, error) {
	leads, err := c.leadRepo.Search(ctx, query)
	if err != nil {
		return nil, &StorageError{Op: "search leads", Err: err}
	}

	return leads, nil
}

// WriteCSV streams every lead to w as RFC 4180 CSV, header first, in the same
// order as an empty search. Rows are written as they are scanned, so memory
// use does not grow with the lead count.
func (c *LeadController) WriteCSV(ctx context.Context, w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(CSVHeader()); err != nil {
		return &StorageError{Op: "export leads", Err: err}
	}

	err := c.leadRepo.ForEach(ctx, func(lead Lead) error {
		return writer.Write([]string{
			strconv.Itoa(lead.ID),
			lead.Name,
			lead.Email,
			lead.Phone,
			lead.InsuranceType,
			lead.Message,
			lead.Source,
			lead.CreatedAt,
		})
	})
	if err != nil {
		return &StorageError{Op: "export leads", Err: err}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return &StorageError{Op: "export leads", Err: err}
	}

	return nil
}

// SeedIfEmpty inserts illustrative sample leads on first startup so the admin
// view is not empty. Restarts with existing data are no-ops.
func (c *LeadController) SeedIfEmpty(ctx context.Context) error {
	log := c.log.Function("SeedIfEmpty")

	count, err := c.leadRepo.Count(ctx)
	if err != nil {
		return &StorageError{Op: "count leads", Err: err}
	}

	if count > 0 {
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	samples := []*Lead{
		{Name: "Alex Johnson", Email: "alex@example.com", Phone: "555-111-2222", InsuranceType: "Auto", Message: "Looking for full coverage", Source: SourceSample, CreatedAt: now},
		{Name: "Maria Lopez", Email: "maria@example.com", Phone: "555-333-4444", InsuranceType: "Home", Message: "Bundle with auto?", Source: SourceSample, CreatedAt: now},
		{Name: "Sam Patel", Email: "sam@example.com", Phone: "555-555-6666", InsuranceType: "Life", Message: "Term vs whole life", Source: SourceSample, CreatedAt: now},
		{Name: "Chris Kim", Email: "chris@example.com", Phone: "555-777-8888", InsuranceType: "Health", Message: "Family plan", Source: SourceSample, CreatedAt: now},
		{Name: "Taylor Smith", Email: "taylor@example.com", Phone: "555-999-0000", InsuranceType: "Business", Message: "General liability quote", Source: SourceSample, CreatedAt: now},
	}

	if err := c.leadRepo.CreateBatch(ctx, samples); err != nil {
		return &StorageError{Op: "seed leads", Err: err}
	}

	log.Info("Seeded sample leads", "count", len(samples))
	return nil
}
