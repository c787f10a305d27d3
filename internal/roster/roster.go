// Package roster — производные представления над справочником и
// назначениями. Только чтение; все счётчики дашборда считаются здесь,
// а не в каждом экране по-своему.
package roster

import (
	"strconv"
	"strings"

	"topsec-backend/internal/apperr"
	"topsec-backend/internal/models"

	"gorm.io/gorm"
)

type Roster struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Roster {
	return &Roster{db: db}
}

// ClientSummary — клиент плюс счётчики для списка клиентов.
type ClientSummary struct {
	models.Client
	PostCount  int `json:"postCount"`
	GuardCount int `json:"guardCount"`
}

// Clients — все клиенты со счётчиками постов и задействованных
// охранников.
func (r *Roster) Clients() ([]ClientSummary, error) {
	var clients []models.Client
	if err := r.db.Order("name asc").Find(&clients).Error; err != nil {
		return nil, apperr.Storage(err)
	}

	var posts []models.Post
	if err := r.db.Find(&posts).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	var assignments []models.Assignment
	if err := r.db.Find(&assignments).Error; err != nil {
		return nil, apperr.Storage(err)
	}

	// строим карты: clientID -> посты, postID -> clientID
	postCount := make(map[uint]int)
	postClient := make(map[uint]uint)
	for _, p := range posts {
		postCount[p.ClientID]++
		postClient[p.ID] = p.ClientID
	}

	// охранника считаем один раз на клиента, даже если он закрывает
	// несколько постов клиента в разных сменах
	guardSeen := make(map[uint]map[uint]struct{})
	for _, a := range assignments {
		clientID, ok := postClient[a.PostID]
		if !ok {
			continue
		}
		if guardSeen[clientID] == nil {
			guardSeen[clientID] = make(map[uint]struct{})
		}
		guardSeen[clientID][a.GuardID] = struct{}{}
	}

	out := make([]ClientSummary, 0, len(clients))
	for _, c := range clients {
		out = append(out, ClientSummary{
			Client:     c,
			PostCount:  postCount[c.ID],
			GuardCount: len(guardSeen[c.ID]),
		})
	}
	return out, nil
}

// Posts — посты с клиентом и действующими назначениями.
// clientID > 0 ограничивает выдачу одним клиентом, q — подстрочный
// поиск без учёта регистра по названию поста и имени клиента.
// Фильтры складываются по И.
func (r *Roster) Posts(clientID uint, q string) ([]models.Post, error) {
	query := r.db.
		Preload("Client").
		Preload("Assignments", func(db *gorm.DB) *gorm.DB {
			return db.Order("shift asc, assigned_at desc, id desc")
		}).
		Preload("Assignments.Guard").
		Order("title asc")
	if clientID > 0 {
		query = query.Where("client_id = ?", clientID)
	}

	var posts []models.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, apperr.Storage(err)
	}

	if q == "" {
		return posts, nil
	}
	needle := strings.ToLower(q)
	out := posts[:0]
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Client.Name), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

// PostsForClient — посты одного клиента в том же виде.
func (r *Roster) PostsForClient(clientID uint) ([]models.Post, error) {
	return r.Posts(clientID, "")
}

// Guards — охранники с их действующими назначениями.
// clientRef — имя клиента или его числовой id; оставляем только тех,
// чьё действующее назначение ведёт на пост этого клиента.
// q — поиск по имени и номеру удостоверения. Фильтры складываются по И.
func (r *Roster) Guards(clientRef, q string) ([]models.Guard, error) {
	var guards []models.Guard
	err := r.db.
		Preload("Assignments", func(db *gorm.DB) *gorm.DB {
			return db.Order("shift asc")
		}).
		Preload("Assignments.Post").
		Preload("Assignments.Post.Client").
		Order("name asc").
		Find(&guards).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}

	if clientRef != "" {
		guards = filterGuardsByClient(guards, clientRef)
	}
	if q != "" {
		needle := strings.ToLower(q)
		out := guards[:0]
		for _, g := range guards {
			if strings.Contains(strings.ToLower(g.Name), needle) ||
				strings.Contains(g.IDNumber, needle) {
				out = append(out, g)
			}
		}
		guards = out
	}
	return guards, nil
}

// GuardsForClient — охранники, задействованные у клиента.
func (r *Roster) GuardsForClient(clientRef string) ([]models.Guard, error) {
	return r.Guards(clientRef, "")
}

// UnassignedGuards — охранники без единого действующего назначения
// в обеих сменах.
func (r *Roster) UnassignedGuards() ([]models.Guard, error) {
	var guards []models.Guard
	err := r.db.
		Where("id NOT IN (?)", r.db.Model(&models.Assignment{}).Select("guard_id")).
		Order("name asc").
		Find(&guards).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return guards, nil
}

// UnmannedPosts — посты без единого действующего назначения
// в обеих сменах.
func (r *Roster) UnmannedPosts() ([]models.Post, error) {
	var posts []models.Post
	err := r.db.
		Preload("Client").
		Where("id NOT IN (?)", r.db.Model(&models.Assignment{}).Select("post_id")).
		Order("title asc").
		Find(&posts).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return posts, nil
}

func filterGuardsByClient(guards []models.Guard, clientRef string) []models.Guard {
	clientID, _ := strconv.Atoi(clientRef)

	out := guards[:0]
	for _, g := range guards {
		for _, a := range g.Assignments {
			if a.Post.Client.ID == 0 {
				continue
			}
			if clientID > 0 && a.Post.Client.ID == uint(clientID) {
				out = append(out, g)
				break
			}
			if clientID == 0 && strings.EqualFold(a.Post.Client.Name, clientRef) {
				out = append(out, g)
				break
			}
		}
	}
	return out
}
