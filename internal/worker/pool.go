package worker

import (
	"context"
	"log"
	"sync"
	"time"
)

// Task é uma unidade de trabalho executada em background
type Task func(ctx context.Context)

// Pool executa tarefas em background com paralelismo e fila limitados.
// Quando a fila enche, Submit descarta a tarefa e retorna false.
type Pool struct {
	queue   chan Task
	wg      sync.WaitGroup
	timeout time.Duration

	mu      sync.Mutex
	stopped bool
}

// NewPool cria um pool com o número de workers e o tamanho de fila dados
func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers
	}

	p := &Pool{
		queue:   make(chan Task, queueSize),
		timeout: 60 * time.Second,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

func (p *Pool) run() {
	defer p.wg.Done()
	for task := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		task(ctx)
		cancel()
	}
}

// Submit enfileira uma tarefa sem bloquear. Retorna false quando a
// fila está cheia ou o pool já parou; a tarefa é descartada.
func (p *Pool) Submit(task Task) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return false
	}

	select {
	case p.queue <- task:
		return true
	default:
		log.Printf("⚠️ Worker queue full, dropping task")
		return false
	}
}

// Stop fecha a fila e espera as tarefas em andamento terminarem
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
}
