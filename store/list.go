/*
Copyright 2022 Vimeo Inc.
Copyright 2026 Megaprog

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package store

// linkedList keeps entries in insertion order. Elements hold their value
// inline to reduce the number of heap objects.
type linkedList[T any] struct {
	head *llElem[T]
	tail *llElem[T]
	size int
}

type llElem[T any] struct {
	next, prev *llElem[T]
	value      T
}

func (l *llElem[T]) Next() *llElem[T] {
	return l.next
}

func (l *linkedList[T]) PushBack(val T) *llElem[T] {
	elem := llElem[T]{
		next:  nil, // last element
		prev:  l.tail,
		value: val,
	}
	if l.tail != nil {
		l.tail.next = &elem
	}
	if l.head == nil {
		l.head = &elem
	}
	l.tail = &elem
	l.size++

	return &elem
}

func (l *linkedList[T]) Remove(e *llElem[T]) {
	if l.tail == e {
		l.tail = e.prev
	}
	if l.head == e {
		l.head = e.next
	}

	if e.next != nil {
		e.next.prev = e.prev
	}
	if e.prev != nil {
		e.prev.next = e.next
	}
	e.next, e.prev = nil, nil
	l.size--
}

func (l *linkedList[T]) Len() int {
	return l.size
}

func (l *linkedList[T]) Front() *llElem[T] {
	return l.head
}
