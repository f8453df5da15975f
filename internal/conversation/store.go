package conversation

import (
	"sync"
)

// Store maps a chat id to its single active conversational state. The
// interface exists so a shared external store can replace the in-memory
// implementation for multi-instance deployments without touching call
// sites; the shipped implementation is process-local and state does not
// survive a restart
type Store interface {
	// Get returns the active state for `chatId` if one exists
	Get(chatId int64) (State, bool)

	// Put replaces whatever state `chatId` holds; last writer wins
	Put(chatId int64, state State)

	// Del removes the state for `chatId`; removing an absent state is
	// not an error
	Del(chatId int64)

	// Len returns the number of chats currently holding a state
	Len() int

	// LockChat serialises handling for a single chat; the returned
	// function releases the lock. Rapid double-taps from the same chat
	// would otherwise race on state read-modify-write
	LockChat(chatId int64) (unlock func())
}

type memoryStore struct {
	states    map[int64]State
	chatLocks map[int64]*sync.Mutex
	lock      sync.Mutex
}

func NewStore() Store {
	return &memoryStore{
		states:    map[int64]State{},
		chatLocks: map[int64]*sync.Mutex{},
	}
}

func (s *memoryStore) Get(chatId int64) (State, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	state, ok := s.states[chatId]
	return state, ok
}

func (s *memoryStore) Put(chatId int64, state State) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.states[chatId] = state
}

func (s *memoryStore) Del(chatId int64) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.states, chatId)
}

func (s *memoryStore) Len() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.states)
}

func (s *memoryStore) LockChat(chatId int64) func() {
	s.lock.Lock()
	chatLock, ok := s.chatLocks[chatId]
	if !ok {
		chatLock = &sync.Mutex{}
		s.chatLocks[chatId] = chatLock
	}
	s.lock.Unlock()
	chatLock.Lock()
	return chatLock.Unlock
}
