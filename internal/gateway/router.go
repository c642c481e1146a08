package gateway

import "sync"

// RoomRouter tracks which connections are subscribed to which rooms.
// It performs no authorization: by the time a join reaches the router
// the CRUD layer has already decided the user may be in the room.
type RoomRouter struct {
	mu sync.RWMutex
	// rooms: roomID -> connID -> client
	rooms map[string]map[string]Client
	// joined: connID -> set of roomIDs, for O(rooms-of-conn) DropAll
	joined map[string]map[string]struct{}
}

func NewRoomRouter() *RoomRouter {
	return &RoomRouter{
		rooms:  make(map[string]map[string]Client),
		joined: make(map[string]map[string]struct{}),
	}
}

// Join subscribes the connection to the room. Joining a room the
// connection is already in is a no-op.
func (r *RoomRouter) Join(c Client, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	members, ok := r.rooms[roomID]
	if !ok {
		members = make(map[string]Client)
		r.rooms[roomID] = members
	}
	members[c.GetConnID()] = c

	set, ok := r.joined[c.GetConnID()]
	if !ok {
		set = make(map[string]struct{})
		r.joined[c.GetConnID()] = set
	}
	set[roomID] = struct{}{}
}

// Leave unsubscribes the connection from the room. Leaving a room the
// connection never joined is a no-op.
func (r *RoomRouter) Leave(c Client, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(c.GetConnID(), roomID)
}

func (r *RoomRouter) leaveLocked(connID, roomID string) {
	if members, ok := r.rooms[roomID]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(r.rooms, roomID)
		}
	}
	if set, ok := r.joined[connID]; ok {
		delete(set, roomID)
		if len(set) == 0 {
			delete(r.joined, connID)
		}
	}
}

// MembersOf returns the live connections subscribed to the room. The
// slice is a copy; callers may fan out over it without holding locks.
func (r *RoomRouter) MembersOf(roomID string) []Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members := r.rooms[roomID]
	out := make([]Client, 0, len(members))
	for _, c := range members {
		out = append(out, c)
	}
	return out
}

// DropAll removes the connection from every room it had joined.
// Called exactly once per disconnect; afterwards no MembersOf result
// contains the connection.
func (r *RoomRouter) DropAll(c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for roomID := range r.joined[c.GetConnID()] {
		r.leaveLocked(c.GetConnID(), roomID)
	}
	delete(r.joined, c.GetConnID())
}
