// Package dashboard implements an HTTP dashboard which trains an
// advice-seeking agent, shows its progress, and lets a human chat with
// it
package dashboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samuelfneumann/aiplayground/agent"
	"github.com/samuelfneumann/aiplayground/agent/tabular/qlearning"
	"github.com/samuelfneumann/aiplayground/config"
	"github.com/samuelfneumann/aiplayground/environment"
	"github.com/samuelfneumann/aiplayground/environment/gridworld"
	"github.com/samuelfneumann/aiplayground/environment/wrappers"
	"github.com/samuelfneumann/aiplayground/experiment"
	"github.com/samuelfneumann/aiplayground/experiment/trackers"
	"github.com/sirupsen/logrus"
)

// Role identifies the sender of a chat message
type Role string

const (
	AI   Role = "AI"
	User Role = "User"
)

// Message is a single entry of the chat transcript
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Episode is the outcome of one training episode run by a Session
type Episode struct {
	Reward   float64
	Question string
}

// ErrEmptyAdvice is returned when a human sends advice with no content
var ErrEmptyAdvice = errors.New("advice is empty")

// Session owns everything the dashboard shows: the environment, the
// agent learning in it, and the chat transcript between the agent and
// a human. A Session is not safe for concurrent use.
type Session struct {
	config *config.Config
	log    logrus.FieldLogger

	env     *gridworld.GridWorld
	tracked *wrappers.Tracked
	agent   *qlearning.QLearning
	lengths *trackers.EpisodeLength
	chat    []Message
}

// NewSession creates a Session with a fresh environment and agent
// described by cfg
func NewSession(cfg *config.Config, log logrus.FieldLogger) (*Session,
	error) {
	s := &Session{config: cfg, log: log}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset replaces the environment and agent with fresh ones and clears
// the chat transcript
func (s *Session) Reset() error {
	env, _, err := gridworld.New(s.config.GridConfig())
	if err != nil {
		return fmt.Errorf("reset: could not create environment: %w", err)
	}

	lengths := trackers.NewEpisodeLength("")
	tracked := wrappers.NewTracked(env, s.config.MaxSteps, lengths)

	q, err := qlearning.New(tracked, s.config.AgentConfig(),
		s.config.Seed)
	if err != nil {
		return fmt.Errorf("reset: could not create agent: %w", err)
	}

	s.env = env
	s.tracked = tracked
	s.agent = q
	s.lengths = lengths
	s.chat = nil
	return nil
}

// Advice returns the most recent message the human sent, or the empty
// string if there is none. It implements experiment.AdviceSource.
func (s *Session) Advice() string {
	for i := len(s.chat) - 1; i >= 0; i-- {
		if s.chat[i].Role == User {
			return s.chat[i].Content
		}
	}
	return ""
}

// Train trains the agent for n episodes with the most recent human
// advice. After each episode that leaves the agent with a question,
// the question is added to the chat transcript.
func (s *Session) Train(n int) []Episode {
	o := experiment.NewOnline(s.tracked, s.agent, n, s.config.MaxSteps, s)
	o.SetLogger(s.log)

	episodes := make([]Episode, 0, n)
	for i := 0; i < n; i++ {
		reward := o.RunEpisode()
		question := s.agent.Message()
		if question != "" {
			s.chat = append(s.chat, Message{Role: AI, Content: question})
		}
		episodes = append(episodes, Episode{Reward: reward, Question: question})
	}

	s.log.WithFields(logrus.Fields{
		"episodes": n,
		"total":    s.agent.Stats().Episodes,
	}).Info("training finished")
	return episodes
}

// Answer sends advice from the human to the agent. The advice is added
// to the chat transcript and incorporated at the agent's current cell.
// Advice that is not a direction is kept in the transcript but does
// not change what the agent has learned.
func (s *Session) Answer(advice string) error {
	advice = strings.TrimSpace(advice)
	if advice == "" {
		return ErrEmptyAdvice
	}

	s.chat = append(s.chat, Message{Role: User, Content: advice})
	s.agent.IncorporateFeedback(s.env.Position(), advice)

	s.log.WithFields(logrus.Fields{
		"advice":   advice,
		"position": s.env.Position().String(),
	}).Info("advice received")
	return nil
}

// Chat returns a copy of the chat transcript
func (s *Session) Chat() []Message {
	chat := make([]Message, len(s.chat))
	copy(chat, s.chat)
	return chat
}

// Agent returns the agent trained by the Session
func (s *Session) Agent() *qlearning.QLearning {
	return s.agent
}

// Snapshot is a read-only view of a Session
type Snapshot struct {
	Size        int                 `json:"size"`
	Position    environment.State   `json:"position"`
	Target      environment.State   `json:"target"`
	Obstacles   []environment.State `json:"obstacles"`
	Stats       agent.Stats         `json:"stats"`
	Message     string              `json:"message"`
	Chat        []Message           `json:"chat"`
	Rewards     []float64           `json:"rewards"`
	SuccessRate float64             `json:"success_rate"`
	States      int                 `json:"states"`
}

// Snapshot returns the current view of the Session
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Size:        s.env.Size(),
		Position:    s.env.Position(),
		Target:      s.env.Target(),
		Obstacles:   s.env.Obstacles(),
		Stats:       s.agent.Stats(),
		Message:     s.agent.Message(),
		Chat:        s.Chat(),
		Rewards:     s.agent.Rewards(),
		SuccessRate: s.lengths.SuccessRate(),
		States:      s.agent.QTable().Len(),
	}
}
