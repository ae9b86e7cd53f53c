// Package pipeline runs a full monitoring batch for one portfolio:
// pick pending calls, download the recordings, transcribe and label them,
// score each transcript against the checklist and persist the results.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/WanderTerra/Automacao-monitoria/internal/audio"
	"github.com/WanderTerra/Automacao-monitoria/internal/config"
	"github.com/WanderTerra/Automacao-monitoria/internal/diarize"
	"github.com/WanderTerra/Automacao-monitoria/internal/evaluate"
	"github.com/WanderTerra/Automacao-monitoria/internal/logger"
	"github.com/WanderTerra/Automacao-monitoria/internal/report"
	"github.com/WanderTerra/Automacao-monitoria/internal/store"
	"github.com/WanderTerra/Automacao-monitoria/internal/transcribe"
	"github.com/WanderTerra/Automacao-monitoria/internal/types"
	"github.com/WanderTerra/Automacao-monitoria/internal/workdir"
)

// Downloader fetches one recording into a folder. Satisfied by
// *portal.Client.
type Downloader interface {
	Login(ctx context.Context) error
	Download(ctx context.Context, callID, destDir string) (string, error)
}

// Transcriber turns an audio file into a captioned transcript. Satisfied
// by *transcribe.Client.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, format transcribe.Format) (string, error)
}

// Evaluator scores one labeled transcript. Satisfied by
// *evaluate.Evaluator.
type Evaluator interface {
	Evaluate(ctx context.Context, callID, transcript string) (types.Evaluation, error)
}

// CallStore is the database surface the pipeline needs. Satisfied by
// *store.Store.
type CallStore interface {
	PendingCalls(ctx context.Context, f config.CallFilter) ([]store.Call, error)
	ResolveCallID(ctx context.Context, fileName string, mapping map[string]string) (string, error)
	SaveEvaluation(ctx context.Context, callID, agentID, carteira string, when time.Time, e types.Evaluation, transcript string) (uint, error)
}

type Pipeline struct {
	cfg         config.Config
	log         *logrus.Entry
	store       CallStore
	portal      Downloader
	transcriber Transcriber
	labeler     diarize.Labeler
	evaluator   Evaluator
	layout      workdir.Layout
	mapping     *workdir.Mapping

	rows     []report.Row
	quality  []report.QualityIssue
	procSecs map[string]float64
}

func New(cfg config.Config, st CallStore, dl Downloader, tr Transcriber, lb diarize.Labeler, ev Evaluator) (*Pipeline, error) {
	layout, err := workdir.New(cfg.WorkDir, cfg.Carteira)
	if err != nil {
		return nil, err
	}
	mapping, err := workdir.LoadMapping(filepath.Join(cfg.WorkDir, "mapeamento_call_ids.csv"))
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:         cfg,
		log:         logger.New().WithRun("").WithField("carteira", cfg.Carteira),
		store:       st,
		portal:      dl,
		transcriber: tr,
		labeler:     lb,
		evaluator:   ev,
		layout:      layout,
		mapping:     mapping,
		procSecs:    map[string]float64{},
	}, nil
}

// Download pulls every pending recording into the work folder, renames it
// to the filename convention and records the call id mapping. A call that
// fails to download is logged and skipped.
func (p *Pipeline) Download(ctx context.Context) (int, error) {
	calls, err := p.store.PendingCalls(ctx, p.cfg.Filter)
	if err != nil {
		return 0, fmt.Errorf("list pending calls: %w", err)
	}
	if len(calls) == 0 {
		p.log.Info("no pending calls")
		return 0, nil
	}
	if err := p.portal.Login(ctx); err != nil {
		return 0, err
	}

	downloaded := 0
	for _, call := range calls {
		log := p.log.WithField("call_id", call.CallID)
		path, err := p.portal.Download(ctx, call.CallID, p.layout.Root)
		if err != nil {
			log.WithError(err).Error("download failed")
			continue
		}
		name := types.RecordingBaseName(types.RecordingInfo{
			When:    call.StartTime,
			AgentID: call.AgentID,
			Queue:   call.QueueID,
		}) + ".wav"
		dest := filepath.Join(p.layout.Root, name)
		if err := os.Rename(path, dest); err != nil {
			log.WithError(err).Error("rename failed")
			continue
		}
		p.mapping.Put(name, call.CallID)
		downloaded++
		log.WithField("file", name).Info("recording downloaded")
	}
	return downloaded, p.mapping.Save()
}

// Transcribe processes every pending audio file: transcription, firm name
// cleanup, speaker labeling and the completeness check. Successful items
// leave a "<name>_diarizado.txt" transcript and the audio moves to the done
// folder; failures move to the error folder with a log.
func (p *Pipeline) Transcribe(ctx context.Context) (int, error) {
	files, err := p.layout.PendingAudio()
	if err != nil {
		return 0, err
	}
	done := 0
	for _, path := range files {
		log := p.log.WithField("file", filepath.Base(path))
		if workdir.Interrupted(path) {
			log.Warn("previous run died on this file, retrying")
		}
		if err := workdir.MarkStart(path); err != nil {
			return done, err
		}
		began := time.Now()
		if err := p.transcribeOne(ctx, path, log); err != nil {
			log.WithError(err).Error("transcription failed")
			if _, ferr := workdir.Fail(path, p.layout.FailedAudio, err); ferr != nil {
				return done, ferr
			}
			continue
		}
		if err := workdir.MarkEnd(path); err != nil {
			return done, err
		}
		p.procSecs[filepath.Base(path)] = time.Since(began).Seconds()
		if _, err := workdir.Move(path, p.layout.DoneAudio); err != nil {
			return done, err
		}
		done++
	}
	return done, nil
}

func (p *Pipeline) transcribeOne(ctx context.Context, path string, log *logrus.Entry) error {
	raw, err := p.transcriber.Transcribe(ctx, path, transcribe.FormatVTT)
	if err != nil {
		return err
	}
	raw = transcribe.CanonicalizeFirm(raw)

	transcript := diarize.Merge(raw, nil)
	labeled, err := p.labeler.Label(ctx, transcript)
	if err != nil {
		log.WithError(err).Warn("speaker labeling incomplete, keeping unlabeled lines")
	}

	if secs, derr := audio.Duration(path); derr == nil {
		if reason, ok := transcribe.CheckCompleteness(labeled, secs); !ok {
			p.quality = append(p.quality, report.QualityIssue{
				File:         filepath.Base(path),
				DurationSecs: secs,
				Words:        len(strings.Fields(labeled)),
				Reason:       reason,
			})
			log.WithField("reason", reason).Warn("transcript failed completeness check")
		}
	} else {
		log.WithError(derr).Warn("could not read audio duration")
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	out := filepath.Join(p.layout.Transcripts, base+"_diarizado.txt")
	return os.WriteFile(out, []byte(labeled), 0o644)
}

// Evaluate scores every pending transcript and persists the result.
// Transcripts that cannot be resolved to a call or whose reply cannot be
// parsed move to the error folder.
func (p *Pipeline) Evaluate(ctx context.Context) (int, error) {
	files, err := p.layout.PendingTranscripts()
	if err != nil {
		return 0, err
	}
	done := 0
	for _, path := range files {
		log := p.log.WithField("file", filepath.Base(path))
		row, err := p.evaluateOne(ctx, path)
		if err != nil {
			log.WithError(err).Error("evaluation failed")
			if _, ferr := workdir.Fail(path, p.layout.FailedTranscripts, err); ferr != nil {
				return done, ferr
			}
			continue
		}
		p.rows = append(p.rows, row)
		if _, err := workdir.Move(path, p.layout.Evaluated); err != nil {
			return done, err
		}
		done++
		log.WithFields(logrus.Fields{
			"call_id": row.CallID,
			"percent": row.Evaluation.PercentScore,
		}).Info("evaluation persisted")
	}
	return done, nil
}

func (p *Pipeline) evaluateOne(ctx context.Context, path string) (report.Row, error) {
	name := filepath.Base(path)
	info, err := types.ParseRecordingName(name)
	if err != nil {
		return report.Row{}, err
	}
	audioName := strings.TrimSuffix(name, "_diarizado.txt") + ".wav"
	callID, err := p.store.ResolveCallID(ctx, audioName, p.mapping.Entries())
	if err != nil {
		return report.Row{}, fmt.Errorf("resolve call id for %s: %w", name, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return report.Row{}, err
	}
	transcript := string(data)

	eval, err := p.evaluator.Evaluate(ctx, callID, transcript)
	if err != nil {
		return report.Row{}, err
	}
	if _, err := p.store.SaveEvaluation(ctx, callID, info.AgentID, p.cfg.Carteira, info.When, eval, transcript); err != nil {
		return report.Row{}, fmt.Errorf("persist evaluation for %s: %w", callID, err)
	}

	row := report.Row{
		CallID:         callID,
		When:           info.When,
		AgentID:        info.AgentID,
		Queue:          info.Queue,
		Evaluation:     eval,
		ProcessingSecs: p.procSecs[audioName],
	}
	if secs, derr := audio.Duration(filepath.Join(p.layout.DoneAudio, audioName)); derr == nil {
		row.Cost = audio.Estimate(secs, p.cfg.Pricing, true)
	}
	return row, nil
}

// Report writes the run's CSV files and the consolidated workbook into the
// work folder, stamped with the run date.
func (p *Pipeline) Report() error {
	stamp := time.Now().Format("20060102")
	evalPath := filepath.Join(p.cfg.WorkDir, "avaliacoes_"+stamp+".csv")
	costPath := filepath.Join(p.cfg.WorkDir, "custos_"+stamp+".csv")
	bookPath := filepath.Join(p.cfg.WorkDir, "consolidado_"+stamp+".xlsx")

	if err := report.WriteEvaluationsCSV(evalPath, p.rows, evaluate.ReportCategories); err != nil {
		return err
	}
	if err := report.WriteCostCSV(costPath, p.rows); err != nil {
		return err
	}
	if len(p.quality) > 0 {
		qualPath := filepath.Join(p.cfg.WorkDir, "qualidade_"+stamp+".csv")
		if err := report.WriteQualityCSV(qualPath, p.quality); err != nil {
			return err
		}
	}
	if err := report.WriteWorkbook(bookPath, p.rows, evaluate.ReportCategories); err != nil {
		return err
	}
	p.log.WithFields(logrus.Fields{
		"evaluations": len(p.rows),
		"quality":     len(p.quality),
	}).Info("reports written")
	return nil
}

// Rows exposes the evaluated calls collected so far, for callers that
// report out of band.
func (p *Pipeline) Rows() []report.Row { return p.rows }

// Run executes the whole batch in order. Stage errors abort the run;
// per-item failures inside a stage are already routed to the error folders.
func (p *Pipeline) Run(ctx context.Context) error {
	n, err := p.Download(ctx)
	if err != nil {
		return fmt.Errorf("download stage: %w", err)
	}
	p.log.WithField("downloaded", n).Info("download stage done")

	n, err = p.Transcribe(ctx)
	if err != nil {
		return fmt.Errorf("transcribe stage: %w", err)
	}
	p.log.WithField("transcribed", n).Info("transcribe stage done")

	n, err = p.Evaluate(ctx)
	if err != nil {
		return fmt.Errorf("evaluate stage: %w", err)
	}
	p.log.WithField("evaluated", n).Info("evaluate stage done")

	return p.Report()
}
