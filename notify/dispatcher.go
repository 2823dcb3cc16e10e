package notify

import (
	"context"
	"fmt"
	"log"
	"sync"

	"ibarangay-be/external"
)

type SMSJob struct {
	Phone   string
	Message string
}

// Dispatcher delivers SMS notifications on a bounded worker pool so a slow
// gateway never blocks a lifecycle transition.
type Dispatcher struct {
	smsClient      *external.Client
	jobQueue       chan SMSJob
	wg             sync.WaitGroup
	workerCount    int
	ctx            context.Context
	cancel         context.CancelFunc
	mu             sync.RWMutex
	isShuttingDown bool
}

func NewDispatcher(smsClient *external.Client, workerCount int) *Dispatcher {
	if workerCount <= 0 {
		workerCount = 3
	}

	ctx, cancel := context.WithCancel(context.Background())

	d := &Dispatcher{
		smsClient:   smsClient,
		jobQueue:    make(chan SMSJob, 100),
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
	}

	for i := 0; i < workerCount; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}

	return d
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()
	log.Printf("SMS worker %d started", id)

	for {
		select {
		case <-d.ctx.Done():
			log.Printf("SMS worker %d received shutdown signal", id)
			return
		case job, ok := <-d.jobQueue:
			if !ok {
				log.Printf("SMS worker %d: job queue closed", id)
				return
			}

			if err := d.smsClient.SendSMS(job.Phone, job.Message); err != nil {
				log.Printf("SMS worker %d: failed to send to %s: %v", id, job.Phone, err)
			}
		}
	}
}

func (d *Dispatcher) Submit(job SMSJob) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.isShuttingDown {
		return fmt.Errorf("dispatcher is shutting down, cannot accept new jobs")
	}

	select {
	case d.jobQueue <- job:
		return nil
	default:
		return fmt.Errorf("sms queue is full (%d jobs), cannot submit new job", cap(d.jobQueue))
	}
}

func (d *Dispatcher) Shutdown() {
	d.mu.Lock()
	d.isShuttingDown = true
	d.mu.Unlock()

	log.Println("Shutting down SMS dispatcher...")

	d.cancel()

	close(d.jobQueue)

	d.wg.Wait()

	log.Println("SMS dispatcher shut down complete")
}

func (d *Dispatcher) GetQueueSize() int {
	return len(d.jobQueue)
}
