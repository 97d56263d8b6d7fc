package progress

import "testing"

func TestPublishStampsSeqAndDelivers(t *testing.T) {
	b := NewBroadcaster()
	ch, unsub := b.Subscribe()
	defer unsub()

	b.Publish(Event{Stage: StageRunning, Mode: 2})
	ev := <-ch
	if ev.Seq != 1 {
		t.Fatalf("Seq = %d, want 1", ev.Seq)
	}
	if ev.Stage != StageRunning || ev.Mode != 2 {
		t.Fatalf("unexpected event: %+v", ev)
	}

	b.Publish(Event{Stage: StageDone})
	ev = <-ch
	if ev.Seq != 2 {
		t.Fatalf("Seq = %d, want 2", ev.Seq)
	}
}

func TestPublishFansOutToAllSubscribers(t *testing.T) {
	b := NewBroadcaster()
	ch1, unsub1 := b.Subscribe()
	ch2, unsub2 := b.Subscribe()
	defer unsub1()
	defer unsub2()

	b.Publish(Event{Stage: StageQueued})

	ev1 := <-ch1
	ev2 := <-ch2
	if ev1.Stage != StageQueued || ev2.Stage != StageQueued {
		t.Fatal("not every subscriber received the published event")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := NewBroadcaster()
	ch, unsub := b.Subscribe()
	unsub()

	b.Publish(Event{Stage: StageFailed})
	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed and drained after unsubscribe")
	}
}

func TestPublishDropsOnFullSubscriberBuffer(t *testing.T) {
	b := NewBroadcaster()
	ch, unsub := b.Subscribe()
	defer unsub()

	// The subscriber buffer holds 16; publish well past that without
	// draining and confirm Publish never blocks.
	for i := 0; i < 64; i++ {
		b.Publish(Event{Stage: StageRunning})
	}
	if len(ch) == 0 {
		t.Fatal("expected some buffered events to survive")
	}
}
