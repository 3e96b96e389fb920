// Package keylock 提供按字符串键互斥的锁管理器
//
// 借阅创建的资格校验是"先查后写"：
// 1. 统计会员当前借阅数（上限2本）
// 2. 检查图书是否已被借出
// 3. 调用图书服务校验ISBN后插入借阅记录
//
// 两个并发请求可能同时通过步骤1/2的检查再先后写入，突破借阅上限或
// 一书一借规则。解决方式：按会员名和ISBN各取一把命名锁，检查和插入
// 全程持锁，使资格约束成为线性一致的保证。
package keylock

import "sync"

// KeyLock 命名互斥锁管理器
// 设计说明：
// 1. 同一个key返回同一把锁，不同key互不阻塞
// 2. 锁对象常驻map（会员名/ISBN数量有限，不做引用计数回收）
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New 创建锁管理器
func New() *KeyLock {
	return &KeyLock{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock 按key加锁，不同key之间互不影响
func (kl *KeyLock) Lock(key string) {
	kl.get(key).Lock()
}

// Unlock 按key解锁
// 注意：必须与Lock成对调用，通常配合defer使用
func (kl *KeyLock) Unlock(key string) {
	kl.get(key).Unlock()
}

// get 获取或创建key对应的锁
func (kl *KeyLock) get(key string) *sync.Mutex {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	m, ok := kl.locks[key]
	if !ok {
		m = &sync.Mutex{}
		kl.locks[key] = m
	}
	return m
}
