// Package notify renders asynchronous coordinator notifications as console
// text. Every rendering ends with a newline so the console controller can
// print it between a suspend/resume pair without extra bookkeeping.
package notify

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/piot/conclave-console/internal/application"
	"github.com/piot/conclave-console/internal/domain"
)

const (
	crownGlyph = "\U0001F451"
	bustGlyph  = "\U0001F464"
	houseGlyph = "\U0001F3E0"
)

type Renderer struct {
	s styles
}

var _ application.NotificationRenderer = (*Renderer)(nil)

func NewRenderer() *Renderer {
	return &Renderer{s: newStyles()}
}

func (r *Renderer) PingResponse(response domain.PingResponse) string {
	lines := []string{r.s.header.Render("--- room info updated ---")}

	for i, member := range response.Members {
		marker := "  "
		if i == response.OwnerIndex {
			marker = r.s.owner.Render(crownGlyph)
		}
		lines = append(lines, fmt.Sprintf("%s%s %s", marker, bustGlyph,
			r.s.member.Render(fmt.Sprintf("userID: %X", uint64(member)))))
	}
	if len(response.Members) == 0 {
		lines = append(lines, r.s.empty.Render("no members"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

func (r *Renderer) RoomCreated(result domain.RoomCreateResult) string {
	lines := []string{
		r.s.header.Render("--- room create done ---"),
		fmt.Sprintf("%s %s %s", houseGlyph,
			r.s.room.Render(fmt.Sprintf("roomID: %d", uint64(result.RoomID))),
			r.s.detail.Render(fmt.Sprintf("connectionToRoom: %d", result.ConnectionIndex))),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

func (r *Renderer) RoomList(result domain.RoomListResult) string {
	lines := []string{r.s.header.Render("--- room list ---")}

	for _, room := range result.Rooms {
		lines = append(lines, fmt.Sprintf("%s %s %s", houseGlyph,
			r.s.room.Render(fmt.Sprintf("%d %q", uint64(room.ID), room.Name)),
			r.s.detail.Render(fmt.Sprintf("owner: %X applicationID: %d",
				uint64(room.OwnerID), room.ApplicationID))))
	}
	if len(result.Rooms) == 0 {
		lines = append(lines, r.s.empty.Render("no rooms"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}
