// Package store is the MySQL layer: it pulls completed calls for
// monitoring and persists evaluations, checklist items and transcripts.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/WanderTerra/Automacao-monitoria/internal/config"
	"github.com/WanderTerra/Automacao-monitoria/internal/types"
)

// ErrCallNotFound is returned when no source call matches a recording.
var ErrCallNotFound = errors.New("call not found")

type Store struct {
	db *gorm.DB
}

// Open connects to the telephony database.
func Open(cfg config.DB) (*Store, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	return &Store{db: db}, nil
}

// NewWithDB wraps an existing gorm handle; tests use it with sqlite.
func NewWithDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the evaluation tables. The calls table belongs to the
// telephony platform and is never migrated here outside of tests.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Avaliacao{}, &ItemAvaliado{}, &Transcricao{})
}

// PendingCalls lists completed calls matching the monitoring filter, newest
// first.
func (s *Store) PendingCalls(ctx context.Context, f config.CallFilter) ([]Call, error) {
	q := s.db.WithContext(ctx).Where("status LIKE ?", "Completada%")
	if f.QueuePrefix != "" {
		q = q.Where("queue_id LIKE ?", f.QueuePrefix+"%")
	}
	if f.QueueExclude != "" {
		q = q.Where("queue_id NOT LIKE ?", f.QueueExclude+"%")
	}
	if f.MinCallSecs > 0 {
		q = q.Where("call_secs > ?", f.MinCallSecs)
	}
	if !f.From.IsZero() {
		q = q.Where("start_time >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("start_time < ?", f.To)
	}
	var calls []Call
	if err := q.Order("start_time DESC").Find(&calls).Error; err != nil {
		return nil, err
	}
	return calls, nil
}

// ResolveCallID maps a recording file name back to its source call. The
// download mapping CSV wins; without it the agent id and timestamp encoded
// in the file name locate the closest call within five minutes.
func (s *Store) ResolveCallID(ctx context.Context, fileName string, mapping map[string]string) (string, error) {
	if id, ok := mapping[fileName]; ok {
		return id, nil
	}
	info, err := types.ParseRecordingName(fileName)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCallNotFound, err)
	}
	var callID string
	row := s.db.WithContext(ctx).Raw(`
		SELECT call_id FROM calls
		WHERE agent_id = ?
		  AND ABS(TIMESTAMPDIFF(SECOND, start_time, ?)) < 300
		ORDER BY ABS(TIMESTAMPDIFF(SECOND, start_time, ?))
		LIMIT 1`,
		info.AgentID, info.When, info.When).Scan(&callID)
	if row.Error != nil {
		return "", row.Error
	}
	if callID == "" {
		return "", fmt.Errorf("%w: no call for agent %s near %s", ErrCallNotFound, info.AgentID, info.When)
	}
	return callID, nil
}

// CallStartTime returns when a call started, for the evaluation row.
func (s *Store) CallStartTime(ctx context.Context, callID string) (time.Time, error) {
	var c Call
	err := s.db.WithContext(ctx).Select("start_time").Where("call_id = ?", callID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, ErrCallNotFound
	}
	if err != nil {
		return time.Time{}, err
	}
	return c.StartTime, nil
}

// SaveEvaluation persists an evaluation, its checklist items and the labeled
// transcript in one transaction and returns the new avaliacao id.
func (s *Store) SaveEvaluation(ctx context.Context, callID, agentID, carteira string, when time.Time, e types.Evaluation, transcript string) (uint, error) {
	status := "REPROVADA"
	if e.Approved() {
		status = "APROVADA"
	}
	av := Avaliacao{
		CallID:          callID,
		AgentID:         agentID,
		DataLigacao:     when,
		StatusAvaliacao: status,
		Pontuacao:       e.PercentScore,
		Carteira:        carteira,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&av).Error; err != nil {
			return fmt.Errorf("insert avaliacao: %w", err)
		}
		for cat, items := range e.Items {
			for name, item := range items {
				row := ItemAvaliado{
					AvaliacaoID: av.ID,
					Categoria:   cat,
					Descricao:   name,
					Resultado:   types.DBResult(item.Status),
					Peso:        item.Weight,
				}
				if item.Note != "" {
					row.Descricao = name + " - " + item.Note
				}
				if err := tx.Create(&row).Error; err != nil {
					return fmt.Errorf("insert item %s/%s: %w", cat, name, err)
				}
			}
		}
		if transcript != "" {
			var existing Transcricao
			err := tx.Where("avaliacao_id = ?", av.ID).First(&existing).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(&Transcricao{AvaliacaoID: av.ID, Conteudo: transcript}).Error; err != nil {
					return fmt.Errorf("insert transcricao: %w", err)
				}
			case err != nil:
				return err
			default:
				existing.Conteudo = transcript
				if err := tx.Save(&existing).Error; err != nil {
					return fmt.Errorf("update transcricao: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return av.ID, nil
}

// EvaluationRecord is one persisted evaluation with its checklist items,
// as read back for reporting.
type EvaluationRecord struct {
	Avaliacao Avaliacao
	Items     []ItemAvaliado
}

// ListEvaluations returns evaluations whose call date falls in [from, to),
// ordered by call date. Zero bounds are open.
func (s *Store) ListEvaluations(ctx context.Context, from, to time.Time) ([]EvaluationRecord, error) {
	q := s.db.WithContext(ctx).Order("data_ligacao")
	if !from.IsZero() {
		q = q.Where("data_ligacao >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("data_ligacao < ?", to)
	}
	var avs []Avaliacao
	if err := q.Find(&avs).Error; err != nil {
		return nil, fmt.Errorf("list avaliacoes: %w", err)
	}
	if len(avs) == 0 {
		return nil, nil
	}

	ids := make([]uint, len(avs))
	for i, av := range avs {
		ids[i] = av.ID
	}
	var items []ItemAvaliado
	if err := s.db.WithContext(ctx).Where("avaliacao_id IN ?", ids).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list itens: %w", err)
	}
	byEval := map[uint][]ItemAvaliado{}
	for _, item := range items {
		byEval[item.AvaliacaoID] = append(byEval[item.AvaliacaoID], item)
	}

	out := make([]EvaluationRecord, len(avs))
	for i, av := range avs {
		out[i] = EvaluationRecord{Avaliacao: av, Items: byEval[av.ID]}
	}
	return out, nil
}

// CallQueues maps call ids to their queue, for report rows rebuilt from
// persisted evaluations.
func (s *Store) CallQueues(ctx context.Context, callIDs []string) (map[string]string, error) {
	if len(callIDs) == 0 {
		return map[string]string{}, nil
	}
	var calls []Call
	if err := s.db.WithContext(ctx).Where("call_id IN ?", callIDs).Find(&calls).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(calls))
	for _, c := range calls {
		out[c.CallID] = c.QueueID
	}
	return out, nil
}

// Evaluation rebuilds the scored structure from a persisted record. Item
// weights and statuses come back as stored; the percent score is the
// persisted one.
func (r EvaluationRecord) Evaluation() types.Evaluation {
	e := types.Evaluation{
		CallID:       r.Avaliacao.CallID,
		PercentScore: r.Avaliacao.Pontuacao,
		Items:        types.Items{},
	}
	for _, item := range r.Items {
		if _, ok := e.Items[item.Categoria]; !ok {
			e.Items[item.Categoria] = map[string]types.ItemResult{}
		}
		e.Items[item.Categoria][item.Descricao] = types.ItemResult{
			Status: item.Resultado,
			Weight: item.Peso,
		}
	}
	return e
}
