package main

import (
	"errors"
	"fmt"

	"sorrybot/internal/core/engine"
	"sorrybot/internal/core/model"
	"sorrybot/internal/core/schedule"
	"sorrybot/internal/logging"
	"sorrybot/internal/platform"
	"sorrybot/internal/ui/overlay"
	"sorrybot/internal/ui/page"
	"sorrybot/internal/ui/preferences"
	"sorrybot/internal/ui/toast"
	"sorrybot/internal/ui/tray"
	"sorrybot/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/viper"
)

func runDesktop() error {
	logger, err := logging.FromViper(viper.GetViper())
	if err != nil {
		return err
	}

	instance, err := platform.AcquireInstance(appName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		if err := platform.Activate(appName); err != nil {
			return fmt.Errorf("activate running instance: %w", err)
		}
		logger.Info("already running, brought the existing window forward")
		return nil
	}
	if err != nil {
		return fmt.Errorf("acquire instance: %w", err)
	}
	defer func() {
		_ = instance.Release()
	}()

	rt, err := loadRuntime(logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = rt.player.Close()
	}()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustLogo(resources.AppLogo))

	scheduler := schedule.System{}
	notifier := toast.NewNotifier(scheduler, rt.rng, toast.DefaultLimit)

	var eng *engine.Engine
	dialog := overlay.New(fyneApp, scheduler, rt.rng, func() {
		eng.DialogClosed()
	})
	mainPage := page.New(fyneApp, page.Options{
		Scheduler: scheduler,
		Random:    rt.rng,
		Pools:     rt.pools,
		Toasts:    notifier.Object(),
	})

	eng, err = rt.newEngine(engine.Ports{
		Notifier: notifier,
		Dialog:   dialog,
		Scene:    mainPage,
		Chat:     mainPage,
	})
	if err != nil {
		return err
	}
	mainPage.Bind(eng)

	mainWindow := mainPage.Window()
	showWindow := func() {
		mainWindow.Show()
		mainWindow.RequestFocus()
	}

	prefsWindow := preferences.New(fyneApp, rt.settings, func(updated preferences.Settings) {
		rt.saveSettings(eng, updated)
	})

	var trayManager *tray.Manager
	refreshTray := func() {
		if trayManager == nil {
			return
		}
		mode := eng.Mode()
		trayManager.SetState(tray.State{Panic: mode.Panic, Holiday: mode.Holiday, Muted: rt.player.Muted()})
	}

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:          showWindow,
			OnApologize:     func() { eng.Dispatch(model.TriggerTray) },
			OnTogglePanic:   eng.TogglePanic,
			OnToggleHoliday: eng.ToggleHoliday,
			OnToggleSound: func() {
				updated := rt.settings
				updated.SoundEnabled = rt.player.Muted()
				rt.saveSettings(eng, updated)
				prefsWindow.UpdateSettings(updated)
				refreshTray()
			},
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(resources.MustLogo(resources.AppLogo))
		refreshTray()
		mainWindow.SetCloseIntercept(mainWindow.Hide)
	} else {
		logger.Info("system tray unsupported on this platform")
		mainWindow.SetMaster()
	}

	go instance.Serve(func() {
		fyne.Do(showWindow)
	})
	go logEvents(logger, eng.Subscribe(32), func(event engine.Event) {
		if event.Type == engine.EventModeChange {
			fyne.Do(refreshTray)
		}
	})

	fyneApp.Lifecycle().SetOnStarted(func() {
		mainPage.Start()
		eng.Start()
	})
	fyneApp.Lifecycle().SetOnStopped(func() {
		eng.Close()
		mainPage.Stop()
	})

	mainWindow.Show()
	fyneApp.Run()
	return nil
}
