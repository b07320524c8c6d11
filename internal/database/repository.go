package database

import (
	"context"
	"database/sql"

	"github.com/flowdeskhq/flowdesk/internal/models"
)

// Repository provides a unified interface to all data operations.
// It composes the per-entity repositories using struct embedding.
type Repository struct {
	*WorkflowRepo
	*TaskRepo
	*FileRepo
	*CardRepo
	*SheetRepo
	*ClientRepo
	*OpportunityRepo
	*InteractionRepo
	*UserRepo
	*SettingsRepo

	db *sql.DB
}

// NewRepository creates a Repository wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		WorkflowRepo:    &WorkflowRepo{db: db},
		TaskRepo:        &TaskRepo{db: db},
		FileRepo:        &FileRepo{db: db},
		CardRepo:        &CardRepo{db: db},
		SheetRepo:       &SheetRepo{db: db},
		ClientRepo:      &ClientRepo{db: db},
		OpportunityRepo: &OpportunityRepo{db: db},
		InteractionRepo: &InteractionRepo{db: db},
		UserRepo:        &UserRepo{db: db},
		SettingsRepo:    &SettingsRepo{db: db},
		db:              db,
	}
}

// Close releases the underlying connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Wrapper methods for WorkflowRepo with entity-qualified names
func (r *Repository) CreateWorkflow(ctx context.Context, name string, userID int) (*models.Workflow, error) {
	return r.WorkflowRepo.Create(ctx, name, userID)
}

func (r *Repository) ListWorkflowsForUser(ctx context.Context, userID int) ([]*models.Workflow, error) {
	return r.WorkflowRepo.ListForUser(ctx, userID)
}

func (r *Repository) RenameWorkflow(ctx context.Context, id int, name string) error {
	return r.WorkflowRepo.Rename(ctx, id, name)
}

func (r *Repository) DeleteWorkflow(ctx context.Context, id int) error {
	return r.WorkflowRepo.Delete(ctx, id)
}

// Wrapper methods for TaskRepo
func (r *Repository) CreateTask(ctx context.Context, workflowID int, text string, order int) (*models.Task, error) {
	return r.TaskRepo.Create(ctx, workflowID, text, order)
}

func (r *Repository) GetTask(ctx context.Context, id int) (*models.Task, error) {
	return r.TaskRepo.Get(ctx, id)
}

func (r *Repository) ListTasksForWorkflow(ctx context.Context, workflowID int) ([]*models.Task, error) {
	return r.TaskRepo.ListForWorkflow(ctx, workflowID)
}

func (r *Repository) ListAllTasks(ctx context.Context) ([]*models.Task, error) {
	return r.TaskRepo.ListAll(ctx)
}

func (r *Repository) UpdateTask(ctx context.Context, id int, text string, checked bool, order int) error {
	return r.TaskRepo.Update(ctx, id, text, checked, order)
}

func (r *Repository) DeleteTask(ctx context.Context, id int) error {
	return r.TaskRepo.Delete(ctx, id)
}

func (r *Repository) ListTasksDueForReminder(ctx context.Context, windowMinutes int) ([]*models.Task, error) {
	return r.TaskRepo.ListDueForReminder(ctx, windowMinutes)
}

func (r *Repository) MarkTaskReminderSent(ctx context.Context, id int, at int64) error {
	return r.TaskRepo.MarkReminderSent(ctx, id, at)
}

func (r *Repository) SetTaskReminderWindow(ctx context.Context, id int, minutes int) error {
	return r.TaskRepo.SetReminderWindow(ctx, id, minutes)
}

// Wrapper methods for FileRepo
func (r *Repository) AddFile(ctx context.Context, path, name string, size, mtime int64, workflowID int) (*models.File, error) {
	return r.FileRepo.Add(ctx, path, name, size, mtime, workflowID)
}

func (r *Repository) GetFileByPath(ctx context.Context, path string) (*models.File, error) {
	return r.FileRepo.GetByPath(ctx, path)
}

func (r *Repository) ListFilesForWorkflow(ctx context.Context, workflowID int) ([]*models.File, error) {
	return r.FileRepo.ListForWorkflow(ctx, workflowID)
}

func (r *Repository) DeleteFile(ctx context.Context, id int) error {
	return r.FileRepo.Delete(ctx, id)
}

// Wrapper methods for CardRepo
func (r *Repository) CreateCard(ctx context.Context, title string, x, y, w, h int, content string) (*models.Card, error) {
	return r.CardRepo.Create(ctx, title, x, y, w, h, content)
}

func (r *Repository) ListAllCards(ctx context.Context) ([]*models.Card, error) {
	return r.CardRepo.ListAll(ctx)
}

func (r *Repository) UpdateCard(ctx context.Context, id int, title string, x, y, w, h int, content string) error {
	return r.CardRepo.Update(ctx, id, title, x, y, w, h, content)
}

func (r *Repository) DeleteCard(ctx context.Context, id int) error {
	return r.CardRepo.Delete(ctx, id)
}

// Wrapper methods for SheetRepo
func (r *Repository) SaveSheet(ctx context.Context, name, csv string) (*models.Sheet, error) {
	return r.SheetRepo.Save(ctx, name, csv)
}

func (r *Repository) GetSheet(ctx context.Context, name string) (*models.Sheet, error) {
	return r.SheetRepo.Get(ctx, name)
}

func (r *Repository) ListSheets(ctx context.Context) ([]*models.Sheet, error) {
	return r.SheetRepo.List(ctx)
}

func (r *Repository) DeleteSheet(ctx context.Context, id int) error {
	return r.SheetRepo.Delete(ctx, id)
}

// LastSavedSheet returns the name of the most recently saved sheet, or ""
// when no sheet has been saved yet.
func (r *Repository) LastSavedSheet(ctx context.Context) string {
	return r.SettingsRepo.GetString(ctx, models.SettingLastSavedSheet, "")
}

// Wrapper methods for ClientRepo
func (r *Repository) CreateClient(ctx context.Context, name, company, email, phone string) (*models.Client, error) {
	return r.ClientRepo.Create(ctx, name, company, email, phone)
}

func (r *Repository) ListAllClients(ctx context.Context) ([]*models.Client, error) {
	return r.ClientRepo.ListAll(ctx)
}

func (r *Repository) UpdateClient(ctx context.Context, id int, name, company, email, phone string) error {
	return r.ClientRepo.Update(ctx, id, name, company, email, phone)
}

func (r *Repository) DeleteClient(ctx context.Context, id int) error {
	return r.ClientRepo.Delete(ctx, id)
}

// Wrapper methods for OpportunityRepo
func (r *Repository) CreateOpportunity(ctx context.Context, clientID int, title string, value float64, status, stage string, ownerID, workflowID int) (*models.Opportunity, error) {
	return r.OpportunityRepo.Create(ctx, clientID, title, value, status, stage, ownerID, workflowID)
}

func (r *Repository) ListAllOpportunities(ctx context.Context) ([]*models.Opportunity, error) {
	return r.OpportunityRepo.ListAll(ctx)
}

func (r *Repository) ListOpportunitiesForWorkflow(ctx context.Context, workflowID int) ([]*models.Opportunity, error) {
	return r.OpportunityRepo.ListForWorkflow(ctx, workflowID)
}

func (r *Repository) UpdateOpportunity(ctx context.Context, id int, title string, value float64, status, stage string, ownerID int) error {
	return r.OpportunityRepo.Update(ctx, id, title, value, status, stage, ownerID)
}

func (r *Repository) DeleteOpportunity(ctx context.Context, id int) error {
	return r.OpportunityRepo.Delete(ctx, id)
}

// Wrapper methods for InteractionRepo
func (r *Repository) AddInteraction(ctx context.Context, opportunityID int, kind, note string, when int64) (*models.Interaction, error) {
	return r.InteractionRepo.Add(ctx, opportunityID, kind, note, when)
}

func (r *Repository) ListInteractionsForOpportunity(ctx context.Context, opportunityID int) ([]*models.Interaction, error) {
	return r.InteractionRepo.ListForOpportunity(ctx, opportunityID)
}

func (r *Repository) DeleteInteraction(ctx context.Context, id int) error {
	return r.InteractionRepo.Delete(ctx, id)
}

// Wrapper methods for UserRepo
func (r *Repository) CreateUser(ctx context.Context, username, passwordHash, salt string) (*models.User, error) {
	return r.UserRepo.Create(ctx, username, passwordHash, salt)
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.UserRepo.GetByUsername(ctx, username)
}

func (r *Repository) DeleteUser(ctx context.Context, id int) error {
	return r.UserRepo.Delete(ctx, id)
}

// Wrapper methods for SettingsRepo
func (r *Repository) GetSettingString(ctx context.Context, key, def string) string {
	return r.SettingsRepo.GetString(ctx, key, def)
}

func (r *Repository) GetSettingInt(ctx context.Context, key string, def int) int {
	return r.SettingsRepo.GetInt(ctx, key, def)
}

func (r *Repository) SetSettingString(ctx context.Context, key, value string) error {
	return r.SettingsRepo.SetString(ctx, key, value)
}

func (r *Repository) SetSettingInt(ctx context.Context, key string, value int) error {
	return r.SettingsRepo.SetInt(ctx, key, value)
}
