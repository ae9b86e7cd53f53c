package store

import "time"

// Call is a row of the telephony platform's calls table. Read-only here.
type Call struct {
	CallID     string     `gorm:"column:call_id;primaryKey"`
	QueueID    string     `gorm:"column:queue_id"`
	AgentID    string     `gorm:"column:agent_id"`
	Status     string     `gorm:"column:status"`
	StartTime  time.Time  `gorm:"column:start_time"`
	AnswerTime *time.Time `gorm:"column:answer_time"`
	HangupTime *time.Time `gorm:"column:hangup_time"`
	CallSecs   int        `gorm:"column:call_secs"`
}

func (Call) TableName() string { return "calls" }

// Avaliacao is one persisted evaluation.
type Avaliacao struct {
	ID              uint      `gorm:"primaryKey"`
	CallID          string    `gorm:"column:call_id"`
	AgentID         string    `gorm:"column:agent_id"`
	DataLigacao     time.Time `gorm:"column:data_ligacao"`
	StatusAvaliacao string    `gorm:"column:status_avaliacao"`
	Pontuacao       float64   `gorm:"column:pontuacao"`
	Carteira        string    `gorm:"column:carteira"`
}

func (Avaliacao) TableName() string { return "avaliacoes" }

// ItemAvaliado is one checklist line of an evaluation.
type ItemAvaliado struct {
	ID          uint    `gorm:"primaryKey"`
	AvaliacaoID uint    `gorm:"column:avaliacao_id"`
	Categoria   string  `gorm:"column:categoria"`
	Descricao   string  `gorm:"column:descricao"`
	Resultado   string  `gorm:"column:resultado"`
	Peso        float64 `gorm:"column:peso"`
}

func (ItemAvaliado) TableName() string { return "itens_avaliados" }

// Transcricao holds the labeled transcript of an evaluated call.
type Transcricao struct {
	ID          uint   `gorm:"primaryKey"`
	AvaliacaoID uint   `gorm:"column:avaliacao_id"`
	Conteudo    string `gorm:"column:conteudo;type:longtext"`
}

func (Transcricao) TableName() string { return "transcricoes" }
