package arrangecli

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"oss.terrastruct.com/arrange/lib/xmain"
)

type watcher struct {
	ms         *xmain.State
	cfg        *layoutConfig
	inputPath  string
	outputPath string

	fw *fsnotify.Watcher
	// laidOut receives the number of items after every successful layout.
	laidOut chan int
}

func newWatcher(ms *xmain.State, cfg *layoutConfig, inputPath, outputPath string) *watcher {
	return &watcher{
		ms:         ms,
		cfg:        cfg,
		inputPath:  inputPath,
		outputPath: outputPath,
	}
}

// run lays out the input once and then again after every change until ctx
// is done. Layout errors are logged, not returned.
func (w *watcher) run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fw = fw
	defer w.fw.Close()

	err = w.watchLoop(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

/*
 * Editors commonly save by replacing the file, which drops the watch on some
 * platforms. Every event re-adds the watch and a slow poll catches anything
 * the events missed.
 */
func (w *watcher) watchLoop(ctx context.Context) error {
	lastModified, err := w.ensureAddWatch(ctx, w.inputPath)
	if err != nil {
		return err
	}
	w.ms.Log.Info.Printf("laying out %v...", w.ms.HumanPath(w.inputPath))
	w.layout(ctx)

	eatBurstTimer := time.NewTimer(0)
	<-eatBurstTimer.C
	pollTicker := time.NewTicker(time.Second * 10)
	defer pollTicker.Stop()

	for {
		select {
		case <-pollTicker.C:
			mt, err := w.ensureAddWatch(ctx, w.inputPath)
			if err != nil {
				return err
			}
			if !mt.Equal(lastModified) {
				lastModified = mt
				w.layout(ctx)
			}
		case ev, ok := <-w.fw.Events:
			if !ok {
				return errors.New("fsnotify watcher closed")
			}
			w.ms.Log.Debug.Printf("received file system event %v", ev)
			mt, err := w.ensureAddWatch(ctx, w.inputPath)
			if err != nil {
				return err
			}
			if ev.Op == fsnotify.Chmod && mt.Equal(lastModified) {
				continue
			}
			lastModified = mt
			// Wait for a burst of events from one save to settle.
			eatBurstTimer.Reset(time.Millisecond * 16)
		case <-eatBurstTimer.C:
			w.ms.Log.Info.Printf("detected change in %s: laying out again...", w.ms.HumanPath(w.inputPath))
			w.layout(ctx)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return errors.New("fsnotify watcher closed")
			}
			w.ms.Log.Error.Printf("fsnotify error: %v", err)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *watcher) layout(ctx context.Context) {
	res, err := layoutFile(ctx, w.ms, w.cfg, w.inputPath, w.outputPath)
	if err != nil {
		w.ms.Log.Error.Print(err)
		return
	}
	if w.laidOut != nil {
		select {
		case w.laidOut <- len(res.Items):
		default:
		}
	}
}

func (w *watcher) ensureAddWatch(ctx context.Context, path string) (time.Time, error) {
	interval := time.Millisecond * 16
	tc := time.NewTimer(0)
	<-tc.C
	for {
		mt, err := w.addWatch(path)
		if err == nil {
			return mt, nil
		}
		if interval >= time.Second {
			w.ms.Log.Error.Printf("failed to watch %q: %v (retrying in %v)", w.ms.HumanPath(path), err, interval)
		}

		tc.Reset(interval)
		select {
		case <-tc.C:
			if interval < time.Second {
				interval = time.Second
			}
			if interval < time.Second*16 {
				interval *= 2
			}
		case <-ctx.Done():
			return time.Time{}, ctx.Err()
		}
	}
}

func (w *watcher) addWatch(path string) (time.Time, error) {
	err := w.fw.Add(path)
	if err != nil {
		return time.Time{}, err
	}
	d, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return d.ModTime(), nil
}
