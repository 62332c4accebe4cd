package ui

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given a notifier", t, func() {
		var m Model

		Convey("A notification is shown and scheduled for clearing", func() {
			cmd := m.Update(NotifyWatchLater("Alien", true)())
			So(cmd, ShouldNotBeNil)
			So(m.Notification(), ShouldEqual, "Added Alien to watch later")
			So(m.View("main"), ShouldContainSubstring, "Added Alien")
		})

		Convey("A stale clear keeps the newer notification", func() {
			m.Update(NotificationMsg{Text: "first"})
			m.Update(NotificationMsg{Text: "second"})
			m.Update(ClearNotificationMsg{ID: 1})
			So(m.Notification(), ShouldEqual, "second")

			m.Update(ClearNotificationMsg{ID: 2})
			So(m.Notification(), ShouldBeEmpty)
			So(m.View("main"), ShouldEqual, "main")
		})
	})
}
