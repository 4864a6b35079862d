package ecs

import (
	"reflect"
	"slices"
)

// EntityID 是实体的唯一标识符
type EntityID uint64

// InvalidEntity 保留的无效实体ID
const InvalidEntity EntityID = 0

// EntityManager 管理所有实体和组件
// 同时充当"能力注册表"：碰撞/重叠解析器通过它查询某个实体（或其祖先）拥有的组件，
// 不做任何场景树遍历
type EntityManager struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]interface{}
	// 父子关系: 子实体 -> 父实体（例如碰撞体挂在角色身上）
	parents map[EntityID]EntityID
	// 待删除的实体ID列表（保持标记顺序）
	entitiesToDestroy []EntityID
	// 待删除集合，保证重复标记不可观察
	pendingDestroy map[EntityID]struct{}
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:            1, // ID从1开始,0保留为无效ID
		components:        make(map[EntityID]map[reflect.Type]interface{}),
		parents:           make(map[EntityID]EntityID),
		entitiesToDestroy: make([]EntityID, 0),
		pendingDestroy:    make(map[EntityID]struct{}),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]interface{})
	return id
}

// Exists 检查实体是否存在（已标记删除但尚未清理的实体仍视为存在）
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.components[id]
	return ok
}

// DestroyEntity 标记实体待删除(不立即删除)
// 对同一实体多次调用与调用一次效果相同
func (em *EntityManager) DestroyEntity(id EntityID) {
	if !em.Exists(id) {
		return
	}
	if _, pending := em.pendingDestroy[id]; pending {
		return
	}
	em.pendingDestroy[id] = struct{}{}
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// DestroyEntityTree 标记实体及其所有子孙待删除
func (em *EntityManager) DestroyEntityTree(id EntityID) {
	em.DestroyEntity(id)
	for _, child := range em.Children(id) {
		if child == id || em.IsPendingDestroy(child) {
			continue
		}
		em.DestroyEntityTree(child)
	}
}

// IsPendingDestroy 检查实体是否已被标记删除
func (em *EntityManager) IsPendingDestroy(id EntityID) bool {
	_, pending := em.pendingDestroy[id]
	return pending
}

// IsAlive 实体存在且未被标记删除
func (em *EntityManager) IsAlive(id EntityID) bool {
	return em.Exists(id) && !em.IsPendingDestroy(id)
}

// SetParent 建立父子关系
// parent 为 InvalidEntity 时解除关系
func (em *EntityManager) SetParent(child, parent EntityID) {
	if parent == InvalidEntity {
		delete(em.parents, child)
		return
	}
	em.parents[child] = parent
}

// Parent 返回实体的父实体
func (em *EntityManager) Parent(child EntityID) (EntityID, bool) {
	p, ok := em.parents[child]
	return p, ok
}

// Children 返回直接子实体（按ID升序）
func (em *EntityManager) Children(parent EntityID) []EntityID {
	result := make([]EntityID, 0)
	for child, p := range em.parents {
		if p == parent {
			result = append(result, child)
		}
	}
	slices.Sort(result)
	return result
}

// AddComponent 为实体添加组件
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	componentType := reflect.TypeOf(component)
	if compMap, exists := em.components[id]; exists {
		compMap[componentType] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, componentType)
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	if compMap, exists := em.components[id]; exists {
		if comp, found := compMap[componentType]; found {
			return comp, true
		}
	}
	return nil, false
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	if compMap, exists := em.components[id]; exists {
		_, found := compMap[componentType]
		return found
	}
	return false
}

// RemoveMarkedEntities 清理所有标记删除的实体
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.entitiesToDestroy {
		delete(em.components, id)
		delete(em.parents, id)
		delete(em.pendingDestroy, id)
	}
	// 父实体被删除后，子实体的父链断开
	for child, parent := range em.parents {
		if !em.Exists(parent) {
			delete(em.parents, child)
		}
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0] // 清空切片
}

// PendingDestroyCount 返回待删除实体数量
func (em *EntityManager) PendingDestroyCount() int {
	return len(em.entitiesToDestroy)
}

// EntityCount 返回当前实体数量
func (em *EntityManager) EntityCount() int {
	return len(em.components)
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体
// 参数: componentTypes ...reflect.Type - 需要的组件类型列表
// 返回: []EntityID - 满足条件的实体ID列表（按ID升序，保证模拟可复现）
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for id, compMap := range em.components {
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	slices.Sort(result)
	return result
}
